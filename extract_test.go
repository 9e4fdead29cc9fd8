package vtpl

import (
	"errors"
	"strings"
	"testing"
)

const extractDocument = `<!DOCTYPE html>
<html>
<head><title>demo</title></head>
<body>
<div id="app"><p :title="t" @click="go">{{ msg }}</p></div>
<script type="text/x-template" id="row-tpl"><li v-for="r in rows">{{ r }}</li></script>
</body>
</html>`

func TestExtractTemplate(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{id: "app", want: `<div id="app"><p :title="t" @click="go">{{ msg }}</p></div>`},
		{id: "row-tpl", want: `<li v-for="r in rows">{{ r }}</li>`},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := ExtractTemplate(strings.NewReader(extractDocument), tt.id)
			if err != nil {
				t.Fatalf("ExtractTemplate() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractTemplate_NotFound(t *testing.T) {
	_, err := ExtractTemplate(strings.NewReader(extractDocument), "missing")
	var notFound ErrElementNotFound
	if !errors.As(err, &notFound) || notFound.ID != "missing" {
		t.Fatalf("expected ErrElementNotFound, got %v", err)
	}
}

func TestCompiler_CompileElement(t *testing.T) {
	result, err := NewCompiler().CompileElement(strings.NewReader(extractDocument), "app")
	if err != nil {
		t.Fatalf("CompileElement() error: %v", err)
	}
	root := result.Root
	if root.Tag != "div" || len(root.Children) != 1 {
		t.Fatalf("unexpected root %+v", shapeOf(root))
	}
	p := childElement(t, root, 0)
	if len(p.Events["click"]) != 1 || len(p.Attrs) != 1 || !p.Attrs[0].Dynamic {
		t.Errorf("unexpected element %+v", shapeOf(p))
	}

	// a template whose root loops cannot be mounted
	_, err = NewCompiler().CompileElement(strings.NewReader(extractDocument), "row-tpl")
	var loopErr ErrLoopOnRoot
	if !errors.As(err, &loopErr) {
		t.Errorf("expected ErrLoopOnRoot, got %v", err)
	}
}
