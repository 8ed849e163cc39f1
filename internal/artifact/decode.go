package artifact

import "github.com/laxarjs/laxar-assembler/internal/jsonutil"

// ParsePageDefinition turns a decoded page document into a PageDefinition,
// keeping the original document on Raw for schema validation.
func ParsePageDefinition(raw map[string]any) *PageDefinition {
	def := &PageDefinition{Raw: raw}

	if layout, ok := raw["layout"].(string); ok {
		def.Layout = layout
	}
	if extends, ok := raw["extends"].(string); ok {
		def.Extends = extends
	}
	if features, ok := raw["features"].(map[string]any); ok {
		def.Features = features
	}
	if merged, ok := raw["mergedFeatures"].(map[string]any); ok {
		def.MergedFeatures = merged
	}

	def.Areas = map[string][]*Item{}
	if areas, ok := raw["areas"].(map[string]any); ok {
		for name, v := range areas {
			list, ok := v.([]any)
			if !ok {
				continue
			}
			items := make([]*Item, 0, len(list))
			for _, elem := range list {
				if m, ok := elem.(map[string]any); ok {
					items = append(items, ParseItem(m))
				}
			}
			def.Areas[name] = items
		}
	}

	return def
}

// ParseItem turns a decoded item document into an Item.
func ParseItem(raw map[string]any) *Item {
	item := &Item{}
	if v, ok := raw["id"].(string); ok {
		item.ID = v
	}
	if v, ok := raw["widget"].(string); ok {
		item.Widget = v
	}
	if v, ok := raw["composition"].(string); ok {
		item.Composition = v
	}
	if v, ok := raw["layout"].(string); ok {
		item.Layout = v
	}
	if v, ok := raw["features"].(map[string]any); ok {
		item.Features = v
	}
	if v, ok := raw["insertBeforeId"].(string); ok {
		item.InsertBeforeID = v
	}
	if v, ok := raw["enabled"].(bool); ok {
		item.Enabled = &v
	}
	return item
}

// AreasToJSON converts a typed Areas map into a generic decoded-JSON tree
// (area name -> array of item documents), for feeding through the
// expression interpolator's generic JSON walker.
func AreasToJSON(areas map[string][]*Item) map[string]any {
	out := make(map[string]any, len(areas))
	for name, items := range areas {
		list := make([]any, 0, len(items))
		for _, item := range items {
			list = append(list, itemToJSON(item))
		}
		out[name] = list
	}
	return out
}

// AreasFromJSON is the inverse of AreasToJSON.
func AreasFromJSON(raw map[string]any) map[string][]*Item {
	out := make(map[string][]*Item, len(raw))
	for name, v := range raw {
		list, ok := v.([]any)
		if !ok {
			continue
		}
		items := make([]*Item, 0, len(list))
		for _, elem := range list {
			if m, ok := elem.(map[string]any); ok {
				items = append(items, ParseItem(m))
			}
		}
		out[name] = items
	}
	return out
}

func itemToJSON(item *Item) map[string]any {
	m := map[string]any{}
	if item.ID != "" {
		m["id"] = item.ID
	}
	if item.Widget != "" {
		m["widget"] = item.Widget
	}
	if item.Composition != "" {
		m["composition"] = item.Composition
	}
	if item.Layout != "" {
		m["layout"] = item.Layout
	}
	if item.Features != nil {
		m["features"] = item.Features
	}
	if item.InsertBeforeID != "" {
		m["insertBeforeId"] = item.InsertBeforeID
	}
	if item.Enabled != nil {
		m["enabled"] = *item.Enabled
	}
	return m
}

// CloneItem returns a deep, independent copy of item.
func CloneItem(item *Item) *Item {
	if item == nil {
		return nil
	}
	clone := *item
	if item.Features != nil {
		clone.Features = jsonutil.Clone(item.Features).(map[string]any)
	}
	if item.Enabled != nil {
		v := *item.Enabled
		clone.Enabled = &v
	}
	return &clone
}

// ClonePageDefinition returns a deep, independent copy of def, the "deep
// clone via lookup" rule of §3's lifecycle notes.
func ClonePageDefinition(def *PageDefinition) *PageDefinition {
	if def == nil {
		return nil
	}
	clone := &PageDefinition{
		Layout:  def.Layout,
		Extends: def.Extends,
	}
	if def.Features != nil {
		clone.Features = jsonutil.Clone(def.Features).(map[string]any)
	}
	if def.MergedFeatures != nil {
		clone.MergedFeatures = jsonutil.Clone(def.MergedFeatures).(map[string]any)
	}
	if def.Raw != nil {
		clone.Raw = jsonutil.Clone(def.Raw).(map[string]any)
	}
	clone.Areas = map[string][]*Item{}
	for name, items := range def.Areas {
		cloned := make([]*Item, len(items))
		for i, it := range items {
			cloned[i] = CloneItem(it)
		}
		clone.Areas[name] = cloned
	}
	return clone
}
