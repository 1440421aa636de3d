package scene

import (
	"fmt"

	"github.com/milk9111/destructible/ecs"
	"github.com/milk9111/destructible/prefabs"
	"github.com/milk9111/destructible/terrain"
	"go.uber.org/zap"
)

// Populate spawns every placement of spec into w.
func Populate(w *ecs.World, spec *prefabs.SceneSpec, templates map[string]*terrain.Template) ([]ecs.Entity, error) {
	if w == nil || spec == nil {
		return nil, nil
	}
	out := make([]ecs.Entity, 0, len(spec.Bodies))
	for i, p := range spec.Bodies {
		tmpl, ok := templates[p.Template]
		if !ok {
			return out, fmt.Errorf("scene: %s: body %d: unknown template %q", spec.Name, i, p.Template)
		}
		e := w.Spawn(tmpl, Transform(p.Transform))
		if !e.Valid() {
			continue
		}
		out = append(out, e)
	}
	w.Logger().Info("scene: populated",
		zap.String("scene", spec.Name),
		zap.Int("bodies", len(out)))
	return out, nil
}

// Assets is everything loaded from the prefab directory for one scene.
type Assets struct {
	Scene     *prefabs.SceneSpec
	Templates map[string]*terrain.Template
	Tools     []*Tool
}

// LoadAssets reads terrain, scene and brush prefabs.
func LoadAssets() (*Assets, error) {
	set, err := prefabs.LoadTerrainSpec()
	if err != nil {
		return nil, err
	}
	templates, err := Templates(set)
	if err != nil {
		return nil, err
	}
	sc, err := prefabs.LoadSceneSpec()
	if err != nil {
		return nil, err
	}
	brushes, err := prefabs.LoadBrushSpec()
	if err != nil {
		return nil, err
	}
	tools, err := Tools(brushes)
	if err != nil {
		return nil, err
	}
	return &Assets{Scene: sc, Templates: templates, Tools: tools}, nil
}
