package deps_test

import (
	"fmt"

	"github.com/matzehuels/licscan/pkg/deps"
)

func ExampleIdentity_String() {
	id := deps.Identity{Name: "http", Version: "1.2.0"}
	fmt.Println(id)
	// Output:
	// http(1.2.0)
}

func ExampleRelationTree_Deps() {
	tree := deps.RelationTree{
		"app(1.0.0)": {"http(1.2.0)", "path(1.8.3)"},
	}
	fmt.Println(tree.Deps("app(1.0.0)"))
	fmt.Println(len(tree.Deps("path(1.8.3)")))
	// Output:
	// [http(1.2.0) path(1.8.3)]
	// 0
}

func ExampleScopeSet_Contains() {
	scope := deps.NewScopeSet("http", "path", "http")
	fmt.Println(scope.Contains("http"), scope.Contains("test"))
	fmt.Println(scope.Names())
	// Output:
	// true false
	// [http path]
}

func ExampleRow_Fields() {
	row := deps.Row{
		PURL:         "pkg:pub/http@1.2.0",
		Name:         "pub:http",
		Version:      "1.2.0",
		License:      "BSD-3-Clause",
		Comment:      deps.CommentDirect,
		Dependencies: []string{"pkg:pub/async@2.11.0", "pkg:pub/meta@1.11.0"},
	}
	fmt.Printf("%q\n", row.Fields())
	// Output:
	// ["pkg:pub/http@1.2.0" "pub:http" "1.2.0" "BSD-3-Clause" "" "" "" "" "direct" "pkg:pub/async@2.11.0,pkg:pub/meta@1.11.0"]
}

func ExampleOptions_WithDefaults() {
	opts := deps.Options{DirectMode: true}.WithDefaults()
	fmt.Println("Flutter:", opts.Flutter)
	fmt.Println("Logger set:", opts.Logger != nil)
	// Output:
	// Flutter: flutter
	// Logger set: true
}
