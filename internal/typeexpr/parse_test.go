package typeexpr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNames(t *testing.T) {
	tests := []struct {
		input string
		want  Expr
	}{
		{"str", Name{Ident: "str"}},
		{"  int  ", Name{Ident: "int"}},
		{"DataSetsAcl.Action", Name{Ident: "DataSetsAcl.Action"}},
		{"'Node'", Name{Ident: "Node"}},
		{`"ViewId"`, Name{Ident: "ViewId"}},
		{"None", Name{Ident: "None"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOptionalSuffix(t *testing.T) {
	got, err := Parse("str | None")
	require.NoError(t, err)

	assert.Equal(t, Union{Alternatives: []Expr{Name{Ident: "str"}, Name{Ident: "None"}}}, got)
}

func TestParseOptionalSuffixOnUnionFlattens(t *testing.T) {
	got, err := Parse("str | int | None")
	require.NoError(t, err)

	u, ok := got.(Union)
	require.True(t, ok)
	assert.Equal(t, []Expr{Name{Ident: "str"}, Name{Ident: "int"}, Name{Ident: "None"}}, u.Alternatives)
}

func TestParseOptionalGeneric(t *testing.T) {
	got, err := Parse("Optional[ContainerId]")
	require.NoError(t, err)

	assert.Equal(t, Union{Alternatives: []Expr{Name{Ident: "ContainerId"}, Name{Ident: "None"}}}, got)
}

func TestParseVerticalUnion(t *testing.T) {
	got, err := Parse("list[int] | dict[str, int] | None")
	require.NoError(t, err)

	u, ok := got.(Union)
	require.True(t, ok)
	require.Len(t, u.Alternatives, 3)
	assert.Equal(t, Generic{Kind: ContainerList, Args: []Expr{Name{Ident: "int"}}}, u.Alternatives[0])
	assert.Equal(t, Generic{Kind: ContainerDict, Args: []Expr{Name{Ident: "str"}, Name{Ident: "int"}}}, u.Alternatives[1])
	assert.Equal(t, Name{Ident: "None"}, u.Alternatives[2])
}

func TestParseUnionInsideGenericIsNotVertical(t *testing.T) {
	got, err := Parse("list[str | int]")
	require.NoError(t, err)

	g, ok := got.(Generic)
	require.True(t, ok)
	assert.Equal(t, ContainerList, g.Kind)
	assert.Equal(t, Union{Alternatives: []Expr{Name{Ident: "str"}, Name{Ident: "int"}}}, g.Args[0])
}

func TestParseDictSplitsOnFirstTopLevelComma(t *testing.T) {
	got, err := Parse("dict[str, dict[str, list[int]]]")
	require.NoError(t, err)

	want := Generic{Kind: ContainerDict, Args: []Expr{
		Name{Ident: "str"},
		Generic{Kind: ContainerDict, Args: []Expr{
			Name{Ident: "str"},
			Generic{Kind: ContainerList, Args: []Expr{Name{Ident: "int"}}},
		}},
	}}
	assert.Equal(t, want, got)
}

func TestParseMapping(t *testing.T) {
	got, err := Parse("Mapping[str, PropertyValue]")
	require.NoError(t, err)

	assert.Equal(t, Generic{Kind: ContainerMapping, Args: []Expr{Name{Ident: "str"}, Name{Ident: "PropertyValue"}}}, got)
}

func TestParseSequenceSpellings(t *testing.T) {
	for _, input := range []string{"Sequence[ViewId]", "typing.Sequence[ViewId]", "SequenceNotStr[ViewId]"} {
		t.Run(input, func(t *testing.T) {
			got, err := Parse(input)
			require.NoError(t, err)
			assert.Equal(t, Generic{Kind: ContainerSequence, Args: []Expr{Name{Ident: "ViewId"}}}, got)
		})
	}
}

func TestParseSingleArgumentContainers(t *testing.T) {
	tests := []struct {
		input string
		kind  ContainerKind
	}{
		{"list[str]", ContainerList},
		{"tuple[int]", ContainerTuple},
		{"Collection[str]", ContainerCollection},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			g, ok := got.(Generic)
			require.True(t, ok)
			assert.Equal(t, tt.kind, g.Kind)
			assert.Len(t, g.Args, 1)
		})
	}
}

func TestParseLiteral(t *testing.T) {
	got, err := Parse(`Literal["node", 'edge', all]`)
	require.NoError(t, err)

	assert.Equal(t, Literal{Values: []string{"node", "edge", "all"}}, got)
}

func TestParseLiteralWithNone(t *testing.T) {
	got, err := Parse(`Literal["outwards", "inwards"] | None`)
	require.NoError(t, err)

	u, ok := got.(Union)
	require.True(t, ok)
	assert.Equal(t, Literal{Values: []string{"outwards", "inwards"}}, u.Alternatives[0])
}

func TestParseLiteralBracketsAndBarsInQuotes(t *testing.T) {
	got, err := Parse(`Literal['[x'] | None`)
	require.NoError(t, err)
	assert.Equal(t, Union{Alternatives: []Expr{Literal{Values: []string{"[x"}}, Name{Ident: "None"}}}, got)

	got, err = Parse(`Literal["a|b", "]"]`)
	require.NoError(t, err)
	assert.Equal(t, Literal{Values: []string{"a|b", "]"}}, got)

	got, err = Parse(`list[Literal['x]']]`)
	require.NoError(t, err)
	assert.Equal(t, Generic{Kind: ContainerList, Args: []Expr{Literal{Values: []string{"x]"}}}}, got)
}

func TestParseUnsupported(t *testing.T) {
	tests := []struct {
		input     string
		offending string
	}{
		{"set[str]", "set[str]"},
		{"Callable[[int], str]", "Callable[[int], str]"},
		{"dict[str]", "dict[str]"},
		{"tuple[int, str]", "tuple[int, str]"},
		{"list[frozenset[int]]", "frozenset[int]"},
		{"list[int]x", "list[int]x"},
		{"", ""},
		{"3rd", "3rd"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)

			var unsupportedErr *UnsupportedAnnotationError
			require.True(t, errors.As(err, &unsupportedErr))
			assert.Equal(t, tt.offending, unsupportedErr.Annotation)
			assert.Contains(t, err.Error(), "unsupported annotation")
		})
	}
}

func TestIsVerticalUnion(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"str", false},
		{"str | int", true},
		{"list[str] | None", true},
		{"list[str | int]", false},
		{"dict[str, int | str] | None", false},
		{`Literal['a|b']`, false},
		{`Literal['[x'] | None`, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsVerticalUnion(tt.input))
		})
	}
}

func TestSplitFirstTopLevelComma(t *testing.T) {
	key, value, ok := SplitFirstTopLevelComma("str, dict[str, int]")
	require.True(t, ok)
	assert.Equal(t, "str", key)
	assert.Equal(t, "dict[str, int]", value)

	key, value, ok = SplitFirstTopLevelComma("dict[str, int], list[str]")
	require.True(t, ok)
	assert.Equal(t, "dict[str, int]", key)
	assert.Equal(t, "list[str]", value)

	_, _, ok = SplitFirstTopLevelComma("list[tuple[int]]")
	assert.False(t, ok)
}

func TestExprString(t *testing.T) {
	got := MustParse("dict[str, list[ViewId] | None]")
	assert.Equal(t, "dict[str, list[ViewId] | None]", got.String())

	got = MustParse("Optional[Sequence[int]]")
	assert.Equal(t, "Sequence[int] | None", got.String())
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("set[int]") })
}
