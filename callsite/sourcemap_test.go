package callsite

import "testing"

// maps generated 1:0 of bundle.js to src/greeter.ts 1:0, name "greet"
const testSourceMap = `{
	"version": 3,
	"file": "bundle.js",
	"sources": ["src/greeter.ts"],
	"names": ["greet"],
	"mappings": "AAAAA"
}`

func TestSourceMaps_Remap(t *testing.T) {
	maps := NewSourceMaps()
	if err := maps.Register("dist/bundle.js", []byte(testSourceMap)); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if maps.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", maps.Len())
	}

	got, ok := maps.Remap(FrameMatch{Name: "e", FilePath: "http://localhost:8080/dist/bundle.js", Line: 1, Column: 1})
	if !ok {
		t.Fatal("expected frame to be remapped")
	}
	want := FrameMatch{Name: "greet", FilePath: "src/greeter.ts", Line: 1, Column: 1}
	if got != want {
		t.Fatalf("Remap() = %+v, want %+v", got, want)
	}

	if _, ok := maps.Remap(FrameMatch{Name: "x", FilePath: "/other.js", Line: 1, Column: 1}); ok {
		t.Error("frame of an unmapped file was remapped")
	}
}

func TestSourceMaps_RegisterInvalid(t *testing.T) {
	if err := NewSourceMaps().Register("bundle.js", []byte("{not json")); err == nil {
		t.Fatal("expected an error for malformed source map")
	}
}

func TestSourceMaps_Nil(t *testing.T) {
	var maps *SourceMaps
	if _, ok := maps.Remap(FrameMatch{FilePath: "bundle.js", Line: 1}); ok {
		t.Fatal("nil registry must not remap")
	}
}

func TestResolve_WithSourceMap(t *testing.T) {
	maps := NewSourceMaps()
	if err := maps.Register("bundle.js", []byte(testSourceMap)); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	r := newTestResolver(DefaultOptions())
	r.SetSourceMaps(maps)

	got := r.Resolve(stack("    at e (http://localhost:8080/bundle.js:1:1)"))
	want := Context{FileName: "greeter.ts", FunctionName: "greet", LineNumber: 1, ColumnNumber: 1}
	if got != want {
		t.Fatalf("Resolve() = %+v, want %+v", got, want)
	}
}
