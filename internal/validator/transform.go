package validator

// transformNode applies the two pre-compile transforms of §4.A in a single
// recursive pass, mutating node in place. node is always our own clone, so
// in-place mutation never touches a caller-owned schema document.
func transformNode(node map[string]any, opts Options) {
	if node == nil {
		return
	}

	if opts.UseMapFormats {
		applyMapFormat(node)
	}

	if opts.ProhibitAdditionalProperties {
		_, hasProps := node["properties"]
		_, hasPatternProps := node["patternProperties"]
		if (hasProps || hasPatternProps) && node["additionalProperties"] == nil {
			node["additionalProperties"] = false
		}
	}

	if sub, ok := node["items"].(map[string]any); ok {
		transformNode(sub, opts)
	}
	if props, ok := node["properties"].(map[string]any); ok {
		for _, v := range props {
			if sub, ok := v.(map[string]any); ok {
				transformNode(sub, opts)
			}
		}
	}
	if pprops, ok := node["patternProperties"].(map[string]any); ok {
		for _, v := range pprops {
			if sub, ok := v.(map[string]any); ok {
				transformNode(sub, opts)
			}
		}
	}
	// A boolean additionalProperties is a leaf (true/false); only an
	// object-valued one is itself a subschema worth descending into.
	if sub, ok := node["additionalProperties"].(map[string]any); ok {
		transformNode(sub, opts)
	}
}

// applyMapFormat converts a bare object schema declaring format "topic-map"
// or "localization" into an equivalent patternProperties schema, per §4.A:
// "if the schema declares type: object ... and declares neither properties
// nor patternProperties, the format is converted into a patternProperties
// entry whose key-pattern is the corresponding format's regex and whose
// value-schema permits anything."
func applyMapFormat(node map[string]any) {
	format, _ := node["format"].(string)
	if format != "topic-map" && format != "localization" {
		return
	}
	if !declaresObjectType(node["type"]) {
		return
	}
	if _, hasProps := node["properties"]; hasProps {
		return
	}
	if _, hasPatternProps := node["patternProperties"]; hasPatternProps {
		return
	}

	var keyPattern string
	if format == "topic-map" {
		keyPattern = topicMapKeyPattern
	} else {
		keyPattern = localizationKeyPattern
	}

	node["patternProperties"] = map[string]any{
		keyPattern: map[string]any{},
	}
	delete(node, "format")
}

func declaresObjectType(v any) bool {
	switch t := v.(type) {
	case string:
		return t == "object"
	case []any:
		for _, e := range t {
			if es, ok := e.(string); ok && es == "object" {
				return true
			}
		}
	}
	return false
}
