package modlib_test

import (
	"testing"
)

func TestYAMLDecode(t *testing.T) {
	s := newStateWith(t, "yaml")

	ok := s.Execute(`
		local doc = assert(yaml.decode("port: 8080\nname: demo\ntags:\n  - a\n  - b\n"))
		port = doc.port
		name = doc.name
		first_tag = doc.tags[1]
	`)
	if !ok {
		t.Fatal("yaml script failed")
	}

	if got := s.Global("port").Int(); got != 8080 {
		t.Errorf("Expected port=8080, got %d", got)
	}
	if got := s.Global("name").Str(); got != "demo" {
		t.Errorf("Expected name=demo, got %q", got)
	}
	if got := s.Global("first_tag").Str(); got != "a" {
		t.Errorf("Expected first_tag=a, got %q", got)
	}
}

func TestYAMLDecodeError(t *testing.T) {
	s := newStateWith(t, "yaml")

	ok := s.Execute(`
		local doc, err = yaml.decode("{ unclosed")
		had_error = (doc == nil) and (err ~= nil)
	`)
	if !ok {
		t.Fatal("yaml script failed")
	}
	if !s.Global("had_error").Bool() {
		t.Error("invalid yaml did not surface an error")
	}
}

func TestYAMLEncodeRoundTrip(t *testing.T) {
	s := newStateWith(t, "yaml")

	ok := s.Execute(`
		local text = assert(yaml.encode({ port = 8080, name = "demo" }))
		local doc = assert(yaml.decode(text))
		round_port = doc.port
		round_name = doc.name
	`)
	if !ok {
		t.Fatal("yaml script failed")
	}
	if got := s.Global("round_port").Int(); got != 8080 {
		t.Errorf("Expected port=8080 after round trip, got %d", got)
	}
	if got := s.Global("round_name").Str(); got != "demo" {
		t.Errorf("Expected name=demo after round trip, got %q", got)
	}
}
