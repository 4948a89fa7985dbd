package openapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// BuildFunc produces the document served by the handlers. It is called once,
// on the first request, and the serialized result is cached.
type BuildFunc func() *Document

// HandleConfig configures the endpoints registered by Handle.
type HandleConfig struct {
	// JSONFilename is the path for the JSON document endpoint
	// (default: "openapi.json"). Set to "-" to disable.
	//
	// Relative paths are joined with the base path, absolute paths
	// (starting with "/") are used as-is.
	JSONFilename string

	// YAMLFilename is the path for the YAML document endpoint
	// (default: "openapi.yaml"). Set to "-" to disable.
	YAMLFilename string
}

func (cfg HandleConfig) jsonFilename() string {
	if cfg.JSONFilename == "" {
		return "openapi.json"
	}
	return cfg.JSONFilename
}

func (cfg HandleConfig) yamlFilename() string {
	if cfg.YAMLFilename == "" {
		return "openapi.yaml"
	}
	return cfg.YAMLFilename
}

// resolvePath returns the full route path for a filename.
func resolvePath(basePath, filename string) string {
	if strings.HasPrefix(filename, "/") {
		return filename
	}
	if basePath == "" {
		return "/" + filename
	}
	return basePath + "/" + filename
}

// Handle registers GET endpoints serving the document as JSON and YAML under
// basePath. It returns the registered paths. Pass nil for the default config:
//
//	openapi.Handle(mux, "/docs", build, nil)
//	// GET /docs/openapi.json
//	// GET /docs/openapi.yaml
func Handle(mux *http.ServeMux, basePath string, build BuildFunc, cfg *HandleConfig) []string {
	if cfg == nil {
		cfg = &HandleConfig{}
	}
	basePath = strings.TrimRight(basePath, "/")

	var paths []string

	if name := cfg.jsonFilename(); name != "-" {
		path := resolvePath(basePath, name)
		mux.Handle(http.MethodGet+" "+path, JSONHandler(build))
		paths = append(paths, path)
	}

	if name := cfg.yamlFilename(); name != "-" {
		path := resolvePath(basePath, name)
		mux.Handle(http.MethodGet+" "+path, YAMLHandler(build))
		paths = append(paths, path)
	}

	return paths
}

// JSONHandler serves the document as JSON.
func JSONHandler(build BuildFunc) http.Handler {
	return documentHandler(build, "application/json", func(doc *Document) ([]byte, error) {
		return json.MarshalIndent(doc, "", "  ")
	})
}

// YAMLHandler serves the document as YAML.
func YAMLHandler(build BuildFunc) http.Handler {
	return documentHandler(build, "application/x-yaml", func(doc *Document) ([]byte, error) {
		return yaml.Marshal(doc)
	})
}

// documentHandler builds and encodes the document once. A panic raised while
// building (a misdeclared response, for instance) is reported as a 500.
func documentHandler(build BuildFunc, contentType string, encode func(*Document) ([]byte, error)) http.Handler {
	var (
		once     sync.Once
		data     []byte
		buildErr error
	)

	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		once.Do(func() {
			defer func() {
				if rv := recover(); rv != nil {
					buildErr = fmt.Errorf("%v", rv)
				}
			}()
			data, buildErr = encode(build())
		})
		if buildErr != nil {
			http.Error(w, "failed to build OpenAPI document", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	})
}
