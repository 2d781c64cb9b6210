package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEndpoints(t *testing.T) {
	input := listInput{Spec: docInput{Content: testCatalogJSON}}
	_, output, err := handleListEndpoints(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, 5, output.TotalMatched)
	assert.Equal(t, 5, output.Returned)
	require.Len(t, output.Endpoints, 5)

	first := output.Endpoints[0]
	assert.NotEmpty(t, first.Method)
	assert.NotEmpty(t, first.Path)
	assert.Nil(t, first.Operation, "summaries must not carry the full operation")
}

func TestListEndpoints_Filters(t *testing.T) {
	tests := []struct {
		name  string
		input listInput
		want  int
	}{
		{"by method", listInput{Spec: docInput{Content: testCatalogJSON}, Method: "GET"}, 2},
		{"by folder", listInput{Spec: docInput{Content: testCatalogJSON}, Folder: "Users"}, 2},
		{"by none folder", listInput{Spec: docInput{Content: testCatalogJSON}, Folder: "(none)"}, 2},
		{"by tag", listInput{Spec: docInput{Content: testCatalogJSON}, Tag: "billing"}, 1},
		{"method and folder", listInput{Spec: docInput{Content: testCatalogJSON}, Method: "get", Folder: "Users"}, 2},
		{"no matches", listInput{Spec: docInput{Content: testCatalogJSON}, Folder: "Nope"}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, output, err := handleListEndpoints(context.Background(), &mcp.CallToolRequest{}, tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, output.TotalMatched)
		})
	}
}

func TestListEndpoints_Detail(t *testing.T) {
	input := listInput{
		Spec:   docInput{Content: testCatalogJSON},
		Method: "get",
		Folder: "Users",
		Detail: true,
	}
	_, output, err := handleListEndpoints(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	require.NotEmpty(t, output.Endpoints)
	for _, ep := range output.Endpoints {
		assert.NotNil(t, ep.Operation)
	}
}

func TestListEndpoints_GroupBy(t *testing.T) {
	input := listInput{
		Spec:    docInput{Content: testCatalogJSON},
		GroupBy: "folder",
	}
	_, output, err := handleListEndpoints(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Empty(t, output.Endpoints)
	require.NotEmpty(t, output.Groups)

	counts := make(map[string]int)
	for _, g := range output.Groups {
		counts[g.Key] = g.Count
	}
	assert.Equal(t, 2, counts["Users"])
	assert.Equal(t, 2, counts["(none)"])
	assert.Equal(t, 1, counts["Admin/Users"])

	// Sorted by count descending, ties alphabetical.
	for i := 1; i < len(output.Groups); i++ {
		prev, cur := output.Groups[i-1], output.Groups[i]
		ok := prev.Count > cur.Count || (prev.Count == cur.Count && prev.Key < cur.Key)
		assert.True(t, ok, "groups out of order: %+v", output.Groups)
	}
}

func TestListEndpoints_GroupByMethod(t *testing.T) {
	input := listInput{
		Spec:    docInput{Content: testCatalogJSON},
		GroupBy: "method",
	}
	_, output, err := handleListEndpoints(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	counts := make(map[string]int)
	for _, g := range output.Groups {
		counts[g.Key] = g.Count
	}
	assert.Equal(t, 2, counts["get"])
	assert.Equal(t, 2, counts["post"])
	assert.Equal(t, 1, counts["delete"])
}

func TestListEndpoints_GroupByErrors(t *testing.T) {
	t.Run("invalid value", func(t *testing.T) {
		input := listInput{Spec: docInput{Content: testCatalogJSON}, GroupBy: "status"}
		result, _, err := handleListEndpoints(context.Background(), &mcp.CallToolRequest{}, input)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.IsError)
	})

	t.Run("combined with detail", func(t *testing.T) {
		input := listInput{Spec: docInput{Content: testCatalogJSON}, GroupBy: "folder", Detail: true}
		result, _, err := handleListEndpoints(context.Background(), &mcp.CallToolRequest{}, input)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.IsError)
	})
}

func TestListEndpoints_Pagination(t *testing.T) {
	input := listInput{
		Spec:   docInput{Content: testCatalogJSON},
		Offset: 2,
		Limit:  2,
	}
	_, output, err := handleListEndpoints(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, 5, output.TotalMatched)
	assert.Equal(t, 2, output.Returned)
}

func TestListEndpoints_OffsetPastEnd(t *testing.T) {
	input := listInput{
		Spec:   docInput{Content: testCatalogJSON},
		Offset: 100,
	}
	_, output, err := handleListEndpoints(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, 5, output.TotalMatched)
	assert.Zero(t, output.Returned)
}
