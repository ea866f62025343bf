package scene

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name or path accepted by Load
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

const (
	builtinGroup = "Built-in Scenes"
	fileGroup    = "Scene Files"
)

// ListBuiltinScenes describes every built-in scene, sorted by name
func ListBuiltinScenes() []SceneInfo {
	var scenes []SceneInfo
	for _, name := range Names() {
		scenes = append(scenes, SceneInfo{
			ID:          name,
			DisplayName: titleCase(name),
			Description: builtins[name].description,
			Group:       builtinGroup,
			Type:        "builtin",
		})
	}
	return scenes
}

// ListSceneFiles scans dir for YAML and JSON scene files. A missing
// directory yields no scenes.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "scanning scene directory %q", dir)
	}

	var scenes []SceneInfo
	for _, entry := range entries {
		if entry.IsDir() || !IsSceneFile(entry.Name()) {
			continue
		}
		scenes = append(scenes, parseSceneInfo(filepath.Join(dir, entry.Name())))
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// parseSceneInfo reads the name and description of a scene file, falling
// back to the file name when the file cannot be parsed
func parseSceneInfo(path string) SceneInfo {
	base := filepath.Base(path)
	info := SceneInfo{
		ID:          path,
		DisplayName: titleCase(strings.TrimSuffix(base, filepath.Ext(base))),
		Group:       fileGroup,
		Type:        "file",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return info
	}
	f, err := Parse(path, data)
	if err != nil {
		return info
	}
	if f.Name != "" {
		info.DisplayName = f.Name
	}
	info.Description = f.Description
	return info
}

// ListAllScenes returns the built-in scenes followed by the scene files in dir
func ListAllScenes(dir string) ([]SceneGroup, error) {
	groups := []SceneGroup{{Name: builtinGroup, Scenes: ListBuiltinScenes()}}

	files, err := ListSceneFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) > 0 {
		groups = append(groups, SceneGroup{Name: fileGroup, Scenes: files})
	}
	return groups, nil
}

// titleCase converts a filename-style string to title case
// e.g., "point-lights" -> "Point Lights"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
