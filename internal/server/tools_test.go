package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"frames_list",
		"frame_match",
		"screenshot_classify",
		"frame_detect_cutout",
		"caption_layout",
		"caption_verify",
		"compose_screenshot",
		"compose_batch",
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("got %d tools, want %d", len(tools), len(expectedTools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("tool %s defined twice", tool.Name)
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
			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok || len(props) == 0 {
				t.Fatal("InputSchema has no properties")
			}

			// Every required field must be a declared property.
			required, _ := tool.InputSchema["required"].([]string)
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required field %s is not a property", r)
				}
			}
		})
	}
}

func TestToolDefinitions_Required(t *testing.T) {
	tests := map[string][]string{
		"screenshot_classify": {"path"},
		"frame_detect_cutout": {"path"},
		"caption_layout":      {"text", "canvas_width", "canvas_height"},
		"caption_verify":      {"path", "text"},
		"compose_screenshot":  {"screenshot_path"},
		"compose_batch":       {"items"},
	}
	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}
	for name, want := range tests {
		required, _ := toolMap[name].InputSchema["required"].([]string)
		if len(required) != len(want) {
			t.Errorf("%s: required %v, want %v", name, required, want)
			continue
		}
		for i := range want {
			if required[i] != want[i] {
				t.Errorf("%s: required %v, want %v", name, required, want)
			}
		}
	}
}

func TestToolDefinitions_ComposeOptions(t *testing.T) {
	var compose Tool
	for _, tool := range GetToolDefinitions() {
		if tool.Name == "compose_screenshot" {
			compose = tool
		}
	}
	props := compose.InputSchema["properties"].(map[string]interface{})
	for _, name := range []string{"frame", "caption", "style", "background", "overrides", "resolution", "output_path"} {
		if _, ok := props[name]; !ok {
			t.Errorf("compose_screenshot is missing %s", name)
		}
	}

	autoFrame := props["auto_frame"].(map[string]interface{})
	if autoFrame["default"] != true {
		t.Errorf("auto_frame default: got %v", autoFrame["default"])
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New(Config{})
	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	result := resp.Result.(map[string]interface{})
	tools, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(tools) != len(GetToolDefinitions()) {
		t.Errorf("got %d tools", len(tools))
	}
}
