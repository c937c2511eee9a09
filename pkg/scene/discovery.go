package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const presetGroup = "Built-in Scenes"

// SceneInfo describes a scene that can be rendered by ID
type SceneInfo struct {
	ID          string `json:"id"`          // Preset name, or "yaml:<file name>"
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "yaml"
	FilePath    string `json:"filePath"`    // Path to the YAML file (yaml type only)
	Variant     string `json:"variant"`     // Variant name (optional)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// ListSceneFiles returns the YAML scenes found in dir. A missing directory
// yields an empty list.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
		}
		files = append(files, matches...)
	}

	scenes := []SceneInfo{}
	for _, path := range files {
		info, err := ParseSceneMetadata(path)
		if err != nil {
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ParseSceneMetadata reads the leading comment block of a YAML scene:
//
//	# Scene: Glass Spheres
//	# Variant: Soft Shadows
//	# Description: Two glass spheres under an area light
//	# Group: Reflections
//
// Missing keys fall back to values derived from the file name.
func ParseSceneMetadata(path string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	info := SceneInfo{
		ID:       "yaml:" + base,
		Name:     titleCase(base),
		Group:    "Scene Files",
		Type:     "yaml",
		FilePath: path,
	}

	file, err := os.Open(path)
	if err != nil {
		info.DisplayName = info.Name
		return info, nil
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		key, value, ok := strings.Cut(content, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch key {
		case "Scene":
			info.Name = value
		case "Variant":
			info.Variant = value
		case "Description":
			info.Description = value
		case "Group":
			info.Group = value
		}
	}

	if info.Variant != "" {
		info.DisplayName = fmt.Sprintf("%s - %s", info.Name, info.Variant)
	} else {
		info.DisplayName = info.Name
	}
	return info, scanner.Err()
}

// ListAllScenes returns the presets followed by the YAML scenes in dir,
// grouped by category with the built-in group first
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	var all []SceneInfo
	for _, p := range Presets() {
		all = append(all, SceneInfo{
			ID:          p.Name,
			Name:        titleCase(p.Name),
			DisplayName: titleCase(p.Name),
			Description: p.Description,
			Group:       presetGroup,
			Type:        "builtin",
		})
	}

	files, err := ListSceneFiles(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}
	all = append(all, files...)

	groups := make(map[string][]SceneInfo)
	var names []string
	for _, s := range all {
		if _, seen := groups[s.Group]; !seen && s.Group != presetGroup {
			names = append(names, s.Group)
		}
		groups[s.Group] = append(groups[s.Group], s)
	}
	sort.Strings(names)

	if builtIn, ok := groups[presetGroup]; ok {
		response.Groups = append(response.Groups, SceneGroup{Name: presetGroup, Scenes: builtIn})
	}
	for _, name := range names {
		response.Groups = append(response.Groups, SceneGroup{Name: name, Scenes: groups[name]})
	}
	return response, nil
}

// Resolve loads a scene by ID: a preset name or a "yaml:" ID from
// ListSceneFiles(dir). Width and height only apply to presets.
func Resolve(id, dir string, width, height int) (*Scene, error) {
	name, isFile := strings.CutPrefix(id, "yaml:")
	if !isFile {
		return NewPreset(id, width, height)
	}
	if name == "" || strings.ContainsAny(name, `/\`) || name == ".." {
		return nil, fmt.Errorf("invalid scene id %q", id)
	}

	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return nil, fmt.Errorf("unknown scene %q", id)
}

// titleCase converts a filename-style string to title case
// e.g., "glass-spheres" -> "Glass Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
