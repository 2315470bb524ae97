package parser

import (
	"testing"
)

func parseSource(t *testing.T, path, code string) *File {
	t.Helper()

	p := NewParser(NewGrammarLoader())
	file, err := p.ParseFile(path, []byte(code))
	if err != nil {
		t.Fatal(err)
	}
	return file
}

func findScope(t *testing.T, file *File, name string) ScopeDecl {
	t.Helper()

	for _, scope := range file.Scopes {
		if scope.Name == name {
			return scope
		}
	}
	t.Fatalf("Scope %s not found in %v", name, file.Scopes)
	return ScopeDecl{}
}

func memberNames(scope ScopeDecl) []string {
	names := make([]string, len(scope.Members))
	for i, m := range scope.Members {
		names[i] = m.Name
	}
	return names
}

func TestTypeScriptClassExtraction(t *testing.T) {
	code := `
class Warbler {
    private count: number = 0;

    constructor() {
        this.count = 1;
    }

    firstMethod(): void {
        this.secondMethod();
        this.inheritedHelper();
    }

    get size(): number {
        return this.count;
    }

    secondMethod(): void {
        this.secondMethod();
    }
}
`
	file := parseSource(t, "warbler.ts", code)
	scope := findScope(t, file, "Warbler")

	if scope.Kind != ScopeClass {
		t.Errorf("Expected class scope, got %v", scope.Kind)
	}

	names := memberNames(scope)
	want := []string{"firstMethod", "size", "secondMethod"}
	if len(names) != len(want) {
		t.Fatalf("Expected members %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Expected members %v, got %v", want, names)
		}
	}

	first := scope.Members[0]
	if len(first.Calls) != 1 || first.Calls[0] != "secondMethod" {
		t.Errorf("Expected firstMethod to resolve only secondMethod, got %v", first.Calls)
	}
	if first.Index != 0 {
		t.Errorf("Expected declared index 0, got %d", first.Index)
	}

	if scope.Members[1].Kind != KindGetter {
		t.Errorf("Expected size to be a getter, got %v", scope.Members[1].Kind)
	}

	// Direct recursion stays a valid self-edge.
	second := scope.Members[2]
	if len(second.Calls) != 1 || second.Calls[0] != "secondMethod" {
		t.Errorf("Expected self-call on secondMethod, got %v", second.Calls)
	}
}

func TestJavaScriptFileScopeExtraction(t *testing.T) {
	code := `
import { other } from "./other";

export function main() {
    helper();
    other();
}

function helper() {
    console.log("hi");
}

const arrow = () => helper();
`
	file := parseSource(t, "main.js", code)
	scope := findScope(t, file, "main.js")

	if scope.Kind != ScopeFile {
		t.Errorf("Expected file scope, got %v", scope.Kind)
	}
	if scope.Location.Line != 1 || scope.Location.Column != 1 {
		t.Errorf("File scope must anchor at start of file, got %v", scope.Location)
	}

	names := memberNames(scope)
	if len(names) != 2 || names[0] != "main" || names[1] != "helper" {
		t.Fatalf("Expected [main helper], got %v", names)
	}

	// other() is imported, not a sibling; it must not appear.
	main := scope.Members[0]
	if len(main.Calls) != 1 || main.Calls[0] != "helper" {
		t.Errorf("Expected main to resolve only helper, got %v", main.Calls)
	}
}

func TestPythonClassExtraction(t *testing.T) {
	code := `
class CountDowner:
    def __init__(self):
        self.n = 10

    def start_count_down(self):
        self.count_down()

    def count_down(self):
        self.step()

    def step(self):
        self.count_down()

    @property
    def remaining(self):
        return self.n
`
	file := parseSource(t, "counter.py", code)
	scope := findScope(t, file, "CountDowner")

	names := memberNames(scope)
	want := []string{"start_count_down", "count_down", "step", "remaining"}
	if len(names) != len(want) {
		t.Fatalf("Expected members %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Expected members %v, got %v", want, names)
		}
	}

	if scope.Members[3].Kind != KindGetter {
		t.Errorf("Expected remaining to be a getter, got %v", scope.Members[3].Kind)
	}
	if calls := scope.Members[1].Calls; len(calls) != 1 || calls[0] != "step" {
		t.Errorf("Expected count_down to call step, got %v", calls)
	}
}

func TestGoReceiverScopeExtraction(t *testing.T) {
	code := `package sample

type Counter struct{ n int }

func (c *Counter) Start() {
	c.tick()
}

func (c *Counter) tick() {
	c.n--
}

func Run() {
	setup()
}

func setup() {}
`
	file := parseSource(t, "counter.go", code)

	scope := findScope(t, file, "Counter")
	names := memberNames(scope)
	if len(names) != 2 || names[0] != "Start" || names[1] != "tick" {
		t.Fatalf("Expected [Start tick], got %v", names)
	}
	if calls := scope.Members[0].Calls; len(calls) != 1 || calls[0] != "tick" {
		t.Errorf("Expected Start to call tick, got %v", calls)
	}

	fileScope := findScope(t, file, "counter.go")
	names = memberNames(fileScope)
	if len(names) != 2 || names[0] != "Run" || names[1] != "setup" {
		t.Fatalf("Expected [Run setup], got %v", names)
	}
}

func TestJavaClassExtraction(t *testing.T) {
	code := `
public class Report {
    public void print() {
        render();
        this.flush();
    }

    private String render() {
        return "";
    }

    private void flush() {
        System.out.println();
    }
}
`
	file := parseSource(t, "Report.java", code)
	scope := findScope(t, file, "Report")

	names := memberNames(scope)
	if len(names) != 3 || names[0] != "print" {
		t.Fatalf("Expected print first, got %v", names)
	}

	calls := scope.Members[0].Calls
	if len(calls) != 2 || calls[0] != "render" || calls[1] != "flush" {
		t.Errorf("Expected print to call render and flush, got %v", calls)
	}
}

func TestRustImplExtraction(t *testing.T) {
	code := `
struct Counter {
    n: u32,
}

impl Counter {
    fn start(&mut self) {
        self.tick();
        Self::reset();
    }

    fn tick(&mut self) {
        self.n -= 1;
    }

    fn reset() {}
}

fn run() {
    setup();
}

fn setup() {}
`
	file := parseSource(t, "counter.rs", code)

	scope := findScope(t, file, "Counter")
	names := memberNames(scope)
	if len(names) != 3 || names[0] != "start" {
		t.Fatalf("Expected start first, got %v", names)
	}
	calls := scope.Members[0].Calls
	if len(calls) != 2 || calls[0] != "tick" || calls[1] != "reset" {
		t.Errorf("Expected start to call tick and reset, got %v", calls)
	}

	fileScope := findScope(t, file, "counter.rs")
	if got := memberNames(fileScope); len(got) != 2 || got[0] != "run" {
		t.Fatalf("Expected [run setup], got %v", got)
	}
}

func TestDetectLanguage(t *testing.T) {
	cases := map[string]string{
		"a.ts":     "typescript",
		"a.tsx":    "tsx",
		"a.js":     "javascript",
		"a.mjs":    "javascript",
		"a.py":     "python",
		"a.go":     "go",
		"a.java":   "java",
		"a.rs":     "rust",
		"a.css":    "",
		"Makefile": "",
	}
	for path, want := range cases {
		if got := DetectLanguage(path); got != want {
			t.Errorf("DetectLanguage(%s) = %q, want %q", path, got, want)
		}
	}
}

func TestUnsupportedLanguage(t *testing.T) {
	p := NewParser(NewGrammarLoader())
	if _, err := p.ParseFile("style.css", []byte("body {}")); err == nil {
		t.Error("Expected an error for unsupported language")
	}
}
