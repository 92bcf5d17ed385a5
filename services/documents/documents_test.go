package documents

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Olbrain/alchemist-dashboard-sub002/dataaccess"
	"github.com/Olbrain/alchemist-dashboard-sub002/services/servicetest"
)

func TestListAttachesDisplayLabels(t *testing.T) {
	fake := servicetest.NewFakeDataAccess()
	fake.DocumentList = []dataaccess.Document{
		{ID: "d1", Name: "faq.md", SizeBytes: 512, Status: "indexed"},
		{ID: "d2", Name: "spec.pdf", SizeBytes: 2048, Status: "indexed"},
	}
	svc := New(fake, zaptest.NewLogger(t))

	views, err := svc.List(context.Background(), "agent-1")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "512 B", views[0].SizeLabel)
	assert.Equal(t, "2.00 KB", views[1].SizeLabel)
}

func TestAddEncodesContent(t *testing.T) {
	fake := servicetest.NewFakeDataAccess()
	svc := New(fake, zaptest.NewLogger(t))

	content := []byte("hello world")
	doc, err := svc.Add(context.Background(), "agent-1", "hello.txt", "text/plain", content)
	require.NoError(t, err)
	require.NotNil(t, doc)

	params := fake.LastDocParams
	require.NotNil(t, params)
	assert.Equal(t, int64(len(content)), params.SizeBytes)
	assert.Equal(t, base64.StdEncoding.EncodeToString(content), params.Content)
}

func TestAddBareAcknowledgementIsAnError(t *testing.T) {
	fake := servicetest.NewFakeDataAccess()
	fake.AckOnly = true
	svc := New(fake, zaptest.NewLogger(t))

	doc, err := svc.Add(context.Background(), "agent-1", "hello.txt", "text/plain", []byte("hi"))
	require.Error(t, err)
	assert.Nil(t, doc)
}
