package commands

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line   string
		want   []string
		wantOK bool
	}{
		{"color --value blue", []string{"color", "--value", "blue"}, true},
		{"cmd texture texture1", []string{"texture", "texture1"}, true},
		{"   ", nil, false},
		{"cmd ", nil, false},
		{"cmd", nil, false},
		{"  cmd   color red ", []string{"color", "red"}, true},
		{"cmdx color", []string{"cmdx", "color"}, true},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.line)
		if ok != tt.wantOK || !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Parse(%q) = %v, %v; want %v, %v", tt.line, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDefaultRegistryBuildsTypedCommands(t *testing.T) {
	reg := NewDefaultRegistry()
	tests := []struct {
		line string
		want Command
	}{
		{"select --x 400 --y 300", Select{X: 400, Y: 300}},
		{"color --value blue", SetColor{Value: "blue"}},
		{"color #ff0000", SetColor{Value: "#ff0000"}},
		{"texture --id texture2", SetTexture{ID: "texture2"}},
		{"texture texture1", SetTexture{ID: "texture1"}},
		{"param --name roughness --value 0.25", SetParam{Param: "roughness", Value: 0.25}},
		{"resize --w 1200 --h 800", Resize{Width: 1200, Height: 800}},
		{"order", PlaceOrder{}},
		{"clear", ClearSelection{}},
	}
	for _, tt := range tests {
		args, _ := Parse(tt.line)
		got, err := reg.Execute(args)
		if err != nil {
			t.Errorf("%q: %v", tt.line, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%q = %#v, want %#v", tt.line, got, tt.want)
		}
		if got.Name() != args[0] {
			t.Errorf("%q: Name() = %q", tt.line, got.Name())
		}
	}
}

func TestFlagsDoNotLeakBetweenLines(t *testing.T) {
	reg := NewDefaultRegistry()
	if _, err := reg.Execute([]string{"color", "--value", "red"}); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Execute([]string{"color"}); err == nil {
		t.Error("second color without value reused the previous flag")
	}
}

func TestExecuteErrors(t *testing.T) {
	reg := NewDefaultRegistry()
	tests := []struct {
		args []string
		want string
	}{
		{nil, "missing subcommand"},
		{[]string{"paint"}, "unknown command: paint"},
		{[]string{"select", "--x", "abc"}, "select:"},
		{[]string{"resize", "--w", "0", "--h", "10"}, "must be positive"},
		{[]string{"param", "--value", "1"}, "missing --name"},
		{[]string{"color", "-h"}, "flags --value"},
	}
	for _, tt := range tests {
		_, err := reg.Execute(tt.args)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("Execute(%v) error = %v, want containing %q", tt.args, err, tt.want)
		}
	}
}

func TestNames(t *testing.T) {
	want := []string{"clear", "color", "order", "param", "resize", "select", "texture"}
	if got := NewDefaultRegistry().Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names = %v", got)
	}
}
