package swagger

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/getkin/kin-openapi/openapi2"
	"gopkg.in/yaml.v3"
)

// LoadDocumentFromSource reads a Swagger 2.0 document from a file path or
// URL and returns the parsed tree. Deserialization and retrieval live here,
// outside the compilation pipeline; Load owns the typed conversion.
func LoadDocumentFromSource(source string) (map[string]any, error) {
	var data []byte
	var err error

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = fetchFromURL(source)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch from URL: %w", err)
		}
	} else {
		data, err = os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
	}

	return ParseDocument(data)
}

func fetchFromURL(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP request failed with status: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// ParseDocument decodes raw JSON or YAML bytes into a document tree and
// verifies it describes a Swagger 2.0 API.
func ParseDocument(data []byte) (map[string]any, error) {
	doc := map[string]any{}
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = map[string]any{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("unsupported or invalid OpenAPI specification")
		}
	}

	if err := sniffSwagger2(doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// sniffSwagger2 round-trips the tree through openapi2.T to recognize a
// Swagger 2.0 document. OpenAPI 3.x input is rejected with a distinct error.
func sniffSwagger2(doc map[string]any) error {
	version := ""

	jsonData, err := json.Marshal(doc)
	if err == nil {
		var spec2 openapi2.T
		if err := json.Unmarshal(jsonData, &spec2); err == nil {
			version = spec2.Swagger
		}
	}
	if version == "" {
		// Fall back to the raw key for documents openapi2 cannot hold.
		version = getString(doc, "swagger")
	}

	if version == "" {
		if _, ok := doc["openapi"]; ok {
			return fmt.Errorf("OpenAPI 3.x specifications are not supported, provide a Swagger 2.0 document")
		}
		return fmt.Errorf("unsupported or invalid OpenAPI specification")
	}

	return nil
}
