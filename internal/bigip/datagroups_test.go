package bigip

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f5ops/mcp-bigip/internal/bigip/bigiptest"
)

func TestDataGroupLifecycle(t *testing.T) {
	fake := bigiptest.New()
	defer fake.Close()
	client := newFakeBackedClient(t, fake)
	ctx := context.Background()

	created, err := client.CreateDataGroup(ctx, DataGroupSpec{
		Name: "blocked_ips",
		Type: "ip",
		Records: []DataGroupRecord{
			{Name: "192.0.2.1"},
			{Name: "192.0.2.2", Data: "blocked"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "/Common/blocked_ips", created.FullPath)

	listed, err := client.ListDataGroups(ctx, DataGroupListOptions{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Nil(t, listed[0].Records, "records are stripped unless requested")

	withRecords, err := client.ListDataGroups(ctx, DataGroupListOptions{IncludeRecords: true})
	require.NoError(t, err)
	require.Len(t, withRecords, 1)
	assert.Len(t, withRecords[0].Records, 2)

	updated, err := client.UpdateDataGroup(ctx, "blocked_ips", DataGroupSpec{
		Records: []DataGroupRecord{{Name: "192.0.2.9"}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Records, 1)

	require.NoError(t, client.DeleteDataGroup(ctx, "blocked_ips", ""))
	listed, err = client.ListDataGroups(ctx, DataGroupListOptions{})
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCreateDataGroupRequiresType(t *testing.T) {
	fake := bigiptest.New()
	defer fake.Close()
	client := newFakeBackedClient(t, fake)

	_, err := client.CreateDataGroup(context.Background(), DataGroupSpec{Name: "dg"})
	assert.ErrorIs(t, err, ErrValidation)
}
