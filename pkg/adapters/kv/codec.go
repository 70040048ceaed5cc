package kv

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Codec defines how a bucket is read from and written to disk.
type Codec interface {
	// Decode parses a bucket file. Empty input is an empty bucket.
	Decode(data []byte) (map[string]string, error)
	// Encode converts the bucket to bytes.
	Encode(values map[string]string) ([]byte, error)
	// Ext is the file extension (with dot) the codec writes.
	Ext() string
}

// DefaultCodecs returns the standard set of codecs keyed by extension.
func DefaultCodecs() map[string]Codec {
	return map[string]Codec{
		".json": JSONCodec{},
		".yaml": YAMLCodec{},
		".yml":  YAMLCodec{},
	}
}

// CodecFor resolves a format name ("json", "yaml") or extension to a codec.
func CodecFor(format string) (Codec, error) {
	ext := strings.ToLower(format)
	if ext == "" {
		ext = ".json"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c, ok := DefaultCodecs()[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported bucket format %q", format)
	}
	return c, nil
}

// codecForPath picks a codec from the bucket file extension, falling back to JSON.
func codecForPath(path string) Codec {
	if c, ok := DefaultCodecs()[strings.ToLower(filepath.Ext(path))]; ok {
		return c
	}
	return JSONCodec{}
}

// --- JSON Codec ---

// JSONCodec stores a bucket as a flat JSON object.
type JSONCodec struct{}

func (JSONCodec) Decode(data []byte) (map[string]string, error) {
	values := make(map[string]string)
	if len(strings.TrimSpace(string(data))) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if values == nil {
		values = make(map[string]string)
	}
	return values, nil
}

func (JSONCodec) Encode(values map[string]string) ([]byte, error) {
	return json.MarshalIndent(values, "", "  ")
}

func (JSONCodec) Ext() string { return ".json" }

// --- YAML Codec ---

// YAMLCodec stores a bucket as a flat YAML mapping.
type YAMLCodec struct{}

func (YAMLCodec) Decode(data []byte) (map[string]string, error) {
	values := make(map[string]string)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if values == nil {
		values = make(map[string]string)
	}
	return values, nil
}

func (YAMLCodec) Encode(values map[string]string) ([]byte, error) {
	return yaml.Marshal(values)
}

func (YAMLCodec) Ext() string { return ".yaml" }
