package server

import (
	"encoding/json"
	"testing"
)

func toolByName(t *testing.T, name string) Tool {
	t.Helper()
	for _, tool := range GetToolDefinitions() {
		if tool.Name == name {
			return tool
		}
	}
	t.Fatalf("tool %s not found", name)
	return Tool{}
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"image_load",
		"image_dimensions",
		"image_sample_color",
		"image_color_census",
		"logo_analyze",
		"favicon_preview",
		"favicon_generate",
		"favicon_presets",
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("got %d tools, want %d", len(tools), len(expectedTools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}
	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			if _, ok := tool.InputSchema["properties"].(map[string]interface{}); !ok {
				t.Error("InputSchema properties should be a map")
			}
			if _, err := json.Marshal(tool); err != nil {
				t.Errorf("tool does not marshal: %v", err)
			}
		})
	}
}

func TestToolDefinitions_Required(t *testing.T) {
	tests := []struct {
		tool     string
		required []string
	}{
		{"image_load", []string{"path"}},
		{"image_dimensions", []string{"path"}},
		{"image_sample_color", []string{"path", "x", "y"}},
		{"image_color_census", []string{"path"}},
		{"logo_analyze", []string{"source_path"}},
		{"favicon_preview", []string{"source_path"}},
		{"favicon_generate", []string{"source_path", "output_dir"}},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			tool := toolByName(t, tt.tool)
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			props := tool.InputSchema["properties"].(map[string]interface{})

			have := make(map[string]bool)
			for _, r := range required {
				have[r] = true
				if _, ok := props[r]; !ok {
					t.Errorf("required %s has no property", r)
				}
			}
			for _, r := range tt.required {
				if !have[r] {
					t.Errorf("should require %s", r)
				}
			}
		})
	}
}

func TestToolDefinitions_PipelineProperties(t *testing.T) {
	for _, name := range []string{"logo_analyze", "favicon_preview", "favicon_generate"} {
		t.Run(name, func(t *testing.T) {
			props := toolByName(t, name).InputSchema["properties"].(map[string]interface{})
			for _, key := range []string{"preset", "source_path", "strategy", "dominance_margin", "alpha_cutoff", "dilation_kernel_size"} {
				if _, ok := props[key]; !ok {
					t.Errorf("missing property %s", key)
				}
			}
		})
	}

	gen := toolByName(t, "favicon_generate").InputSchema["properties"].(map[string]interface{})
	for _, key := range []string{"output_dir", "target_sizes", "icon_sizes", "export_container"} {
		if _, ok := gen[key]; !ok {
			t.Errorf("favicon_generate missing property %s", key)
		}
	}
	preview := toolByName(t, "favicon_preview").InputSchema["properties"].(map[string]interface{})
	if _, ok := preview["max_size"]; !ok {
		t.Error("favicon_preview missing max_size")
	}
	if _, ok := preview["output_dir"]; ok {
		t.Error("favicon_preview should not take output_dir")
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New(nil)
	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 7})

	if resp.ID != 7 {
		t.Errorf("ID: got %v, want 7", resp.ID)
	}
	result := resp.Result.(map[string]interface{})
	if tools := result["tools"].([]Tool); len(tools) != 8 {
		t.Errorf("tools: got %d, want 8", len(tools))
	}
}
