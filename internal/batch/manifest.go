package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry describes one rendered frame in the output manifest.
type ManifestEntry struct {
	Frame    int     `json:"frame"`
	Angle    float32 `json:"angle"`
	Image    string  `json:"image"`
	Draws    int     `json:"draws"`
	Rendered int     `json:"rendered_pixels"`
	Culled   int     `json:"culled_pixels"`
}

// WriteManifest writes manifest.json listing every successful frame.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Frame:    r.Frame,
			Angle:    r.Angle,
			Image:    r.Image,
			Draws:    r.Stats.Draws,
			Rendered: r.Stats.Rendered,
			Culled:   r.Stats.Culled,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
