package course

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

//go:embed courses.yaml
var builtinCourses []byte

// yaml document shapes; converted to the runtime types after parsing.
type courseFile struct {
	Start   string      `yaml:"start"`
	Courses []courseDef `yaml:"courses"`
}

type courseDef struct {
	ID       string       `yaml:"id"`
	Name     string       `yaml:"name"`
	Spawn    [3]float32   `yaml:"spawn"`
	Sky      [3]float32   `yaml:"sky"`
	Geometry []boxDef     `yaml:"geometry"`
	Pickups  []pickupDef  `yaml:"pickups"`
	Portals  []portalDef  `yaml:"portals"`
	Bunnies  []spawnDef   `yaml:"bunnies"`
}

type boxDef struct {
	Center     [3]float32 `yaml:"center"`
	Size       [3]float32 `yaml:"size"`
	Color      [3]float32 `yaml:"color"`
	Decorative bool       `yaml:"decorative"`
}

type pickupDef struct {
	Kind     string     `yaml:"kind"`
	Position [3]float32 `yaml:"position"`
	Radius   float32    `yaml:"radius"`
}

type portalDef struct {
	Position      [3]float32 `yaml:"position"`
	Radius        float32    `yaml:"radius"`
	Target        string     `yaml:"target"`
	StarsRequired int        `yaml:"stars_required"`
}

type spawnDef struct {
	Position [3]float32 `yaml:"position"`
}

func vec(v [3]float32) mgl32.Vec3 { return mgl32.Vec3{v[0], v[1], v[2]} }

// LoadBuiltin parses the course set embedded in the binary.
func LoadBuiltin() ([]*Course, string, error) {
	return parse(builtinCourses)
}

// LoadFile parses a course set from disk, for custom level packs.
func LoadFile(path string) ([]*Course, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("course: read %s: %w", path, err)
	}
	return parse(data)
}

func parse(data []byte) ([]*Course, string, error) {
	var doc courseFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, "", fmt.Errorf("course: parse: %w", err)
	}
	if len(doc.Courses) == 0 {
		return nil, "", fmt.Errorf("course: no courses defined")
	}

	ids := make(map[string]bool, len(doc.Courses))
	courses := make([]*Course, 0, len(doc.Courses))
	for _, def := range doc.Courses {
		if def.ID == "" {
			return nil, "", fmt.Errorf("course: course with empty id")
		}
		if ids[def.ID] {
			return nil, "", fmt.Errorf("course: duplicate course id %q", def.ID)
		}
		ids[def.ID] = true

		c := &Course{
			ID:    def.ID,
			Name:  def.Name,
			Spawn: vec(def.Spawn),
			Sky:   def.Sky,
		}
		for _, b := range def.Geometry {
			c.Geometry = append(c.Geometry, Box{
				Center:     vec(b.Center),
				Size:       vec(b.Size),
				Color:      b.Color,
				Collidable: !b.Decorative,
			})
		}
		for _, p := range def.Pickups {
			kind := PickupKind(p.Kind)
			switch kind {
			case PickupCoin, PickupRedCoin, PickupStar:
			default:
				return nil, "", fmt.Errorf("course: %s: unknown pickup kind %q", def.ID, p.Kind)
			}
			radius := p.Radius
			if radius <= 0 {
				radius = 1.2
			}
			c.Pickups = append(c.Pickups, &Pickup{Kind: kind, Position: vec(p.Position), Radius: radius})
		}
		for _, pt := range def.Portals {
			radius := pt.Radius
			if radius <= 0 {
				radius = 2.5
			}
			c.Portals = append(c.Portals, Portal{
				Position:      vec(pt.Position),
				Radius:        radius,
				Target:        pt.Target,
				StarsRequired: pt.StarsRequired,
			})
		}
		for _, bn := range def.Bunnies {
			c.Bunnies = append(c.Bunnies, BunnySpawn{Position: vec(bn.Position)})
		}
		courses = append(courses, c)
	}

	// Portal targets must resolve.
	for _, c := range courses {
		for _, pt := range c.Portals {
			if !ids[pt.Target] {
				return nil, "", fmt.Errorf("course: %s: portal targets unknown course %q", c.ID, pt.Target)
			}
		}
	}

	start := doc.Start
	if start == "" {
		start = courses[0].ID
	}
	if !ids[start] {
		return nil, "", fmt.Errorf("course: start course %q not defined", start)
	}
	return courses, start, nil
}
