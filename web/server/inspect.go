package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool           `json:"hit"`
	MaterialType string         `json:"materialType,omitempty"`
	GeometryType string         `json:"geometryType,omitempty"`
	Point        [3]float64     `json:"point"`
	Normal       [3]float64     `json:"normal"`
	Distance     *float64       `json:"distance"` // null for the background at infinity
	Color        string         `json:"color"`    // Pixel color as rendered
	Properties   map[string]any `json:"properties,omitempty"`
	Scene        SceneSummary   `json:"scene"`
}

// SceneSummary describes the scene an inspected pixel belongs to
type SceneSummary struct {
	Name     string             `json:"name"`
	Surfaces int                `json:"surfaces"`
	Lights   []lights.LightType `json:"lights"`
}

func summarize(sceneObj *scene.Scene) SceneSummary {
	return SceneSummary{
		Name:     sceneObj.Name,
		Surfaces: sceneObj.GetPrimitiveCount(),
		Lights:   sceneObj.GetLightTypes(),
	}
}

// InspectResult describes the surface seen through one pixel
type InspectResult struct {
	Hit          bool
	Surface      core.Surface
	Intersection core.Intersection
	Normal       core.Vec3
	Color        core.Color
}

func vec(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Color) string {
	rgb := c.RGB8()
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat core.Material) (string, map[string]any) {
	properties := make(map[string]any)

	switch m := mat.(type) {
	case *material.Albedo:
		properties["color"] = hexColor(m.Color)
		return "albedo", properties

	case *material.Diffuse:
		properties["color"] = hexColor(m.Albedo)
		properties["diffuse"] = m.Coefficient
		return "diffuse", properties

	case *material.SpecularDiffuse:
		properties["color"] = hexColor(m.Albedo)
		properties["diffuse"] = m.Coefficient
		properties["specular"] = m.Specular
		properties["exponent"] = m.Exponent
		return "specular", properties

	case *material.SpecularDiffuseReflective:
		properties["color"] = hexColor(m.Albedo)
		properties["diffuse"] = m.Coefficient
		properties["specular"] = m.Specular
		properties["exponent"] = m.Exponent
		properties["reflection"] = m.Reflection
		return "reflective", properties

	case *material.Environment:
		if m.Texture != nil {
			properties["textureWidth"] = m.Texture.Width
			properties["textureHeight"] = m.Texture.Height
		}
		return "environment", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(surface core.Surface, point core.Vec3) (string, map[string]any) {
	properties := make(map[string]any)

	switch geom := surface.(type) {
	case *geometry.Sphere:
		properties["center"] = vec(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Plane:
		properties["point"] = vec(geom.Point)
		properties["normal"] = vec(geom.Normal(point))
		return "plane", properties

	case *geometry.BackgroundSurface:
		return "background", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts the primary ray of a pixel and reports the nearest
// surface along it
func inspectPixel(sceneObj *scene.Scene, rt *renderer.Raytracer, pixelX, pixelY int) InspectResult {
	ray := sceneObj.Camera.GetRay(rt.Screen(), pixelX, pixelY)

	surface, hit, ok := sceneObj.World.Nearest(ray)
	if !ok {
		return InspectResult{Hit: false}
	}

	c, _ := rt.PixelColor(pixelX, pixelY)
	return InspectResult{
		Hit:          true,
		Surface:      surface,
		Intersection: hit,
		Normal:       surface.Normal(hit.Point),
		Color:        c,
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, rt, err := s.setupRaytracer(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	screen := rt.Screen()
	if pixelX < 0 || pixelX >= screen.Width || pixelY < 0 || pixelY >= screen.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result := inspectPixel(sceneObj, rt, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, Color: hexColor(core.Black), Scene: summarize(sceneObj)})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.Surface.Material())
	geometryType, geometryProps := extractGeometryInfo(result.Surface, result.Intersection.Point)

	response := InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vec(result.Intersection.Point),
		Normal:       vec(result.Normal),
		Color:        hexColor(result.Color),
		Properties: map[string]any{
			"material": materialProps,
			"geometry": geometryProps,
		},
		Scene: summarize(sceneObj),
	}
	if !math.IsInf(result.Intersection.Distance, 1) {
		distance := result.Intersection.Distance
		response.Distance = &distance
	}

	writeJSON(w, http.StatusOK, response)
}
