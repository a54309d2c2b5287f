package repository

import "encoding/json"

// Image references are opaque path identifiers produced by an
// external upload collaborator. They are stored as a JSON array in a
// single column; the repository only encodes and decodes, it never
// interprets the paths.

func encodeImages(paths []string) (string, error) {
	if paths == nil {
		paths = []string{}
	}
	b, err := json.Marshal(paths)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeImages(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var paths []string
	if err := json.Unmarshal([]byte(raw), &paths); err != nil {
		return []string{}
	}
	return paths
}
