package pub

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Catalog generator injected into the copied manifest.
const (
	licensesPackage    = "flutter_oss_licenses"
	licensesConstraint = "^2.0.1"
)

// rewriteManifest replaces the dev_dependencies of a pubspec.yaml with the
// catalog generator alone. Every other key keeps its position and value.
func rewriteManifest(data []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ManifestFile, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse %s: top level is not a mapping", ManifestFile)
	}
	root := doc.Content[0]

	devDeps := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: licensesPackage},
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: licensesConstraint},
		},
	}

	replaced := false
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "dev_dependencies" {
			root.Content[i+1] = devDeps
			replaced = true
			break
		}
	}
	if !replaced {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "dev_dependencies"},
			devDeps,
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("write %s: %w", ManifestFile, err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
