package provider_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/provstack/postgres-provider-go/provider"
)

func Test_Rows_JSON_ShouldRenderRowsAsNestedArrays(t *testing.T) {
	// arrange
	rows := provider.Rows{
		provider.Row{int64(1), "disk"},
		provider.Row{int64(2), nil},
	}

	// act
	output, err := rows.JSON()

	// assert
	assert.NoError(t, err)
	assert.JSONEq(t, `[[1,"disk"],[2,null]]`, string(output))
}

func Test_Rows_JSON_ShouldRenderEmptyResultSet(t *testing.T) {
	// act
	output, err := provider.Rows{}.JSON()

	// assert
	assert.NoError(t, err)
	assert.JSONEq(t, `[]`, string(output))
}
