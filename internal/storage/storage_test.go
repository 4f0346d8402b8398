package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanKey(t *testing.T) {
	good := map[string]string{
		"documents/2026/01/a.pdf":   "documents/2026/01/a.pdf",
		"documents//2026/./a.pdf":   "documents/2026/a.pdf",
		`documents\2026\a.pdf`:      "documents/2026/a.pdf",
		" gallery/img.jpg ":         "gallery/img.jpg",
	}
	for in, want := range good {
		got, err := CleanKey(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	for _, bad := range []string{"", "   ", "/etc/passwd", "../secret", "documents/../../x", ".", "a/.."} {
		_, err := CleanKey(bad)
		assert.ErrorIs(t, err, ErrInvalidKey, bad)
	}
}

func TestNewKey(t *testing.T) {
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	k := NewKey("documents", "Паспорт изделия (v2).PDF", now)
	assert.True(t, strings.HasPrefix(k, "documents/2026/03/Паспортизделияv2_"), k)
	assert.True(t, strings.HasSuffix(k, ".pdf"), k)

	k2 := NewKey("/documents/", "!!!.docx", now)
	assert.True(t, strings.HasPrefix(k2, "documents/2026/03/file_"), k2)
	assert.NotEqual(t, k2, NewKey("documents", "!!!.docx", now))

	_, err := CleanKey(k)
	assert.NoError(t, err)
}

func TestLocalStore_SaveOpenDelete(t *testing.T) {
	root := filepath.Join(t.TempDir(), "media")
	s, err := NewLocal(root)
	require.NoError(t, err)
	ctx := context.Background()

	n, err := s.Save(ctx, "documents/2026/01/a.pdf", strings.NewReader("%PDF-1.4 hello"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(14), n)

	_, err = os.Stat(filepath.Join(root, "documents", "2026", "01", "a.pdf.tmp"))
	assert.True(t, os.IsNotExist(err), "temp file must not linger")

	obj, err := s.Open(ctx, "documents/2026/01/a.pdf")
	require.NoError(t, err)
	body, err := io.ReadAll(obj.Body)
	require.NoError(t, obj.Body.Close())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 hello", string(body))
	assert.Equal(t, int64(14), obj.Size)
	assert.Equal(t, "application/pdf", obj.ContentType)
	assert.False(t, obj.ModTime.IsZero())

	require.NoError(t, s.Delete(ctx, "documents/2026/01/a.pdf"))
	_, err = s.Open(ctx, "documents/2026/01/a.pdf")
	assert.ErrorIs(t, err, ErrNotExist)
	assert.NoError(t, s.Delete(ctx, "documents/2026/01/a.pdf"), "deleting a missing key is not an error")
}

func TestLocalStore_RejectsTraversalAndDirs(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Open(ctx, "../outside.txt")
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = s.Save(ctx, "../outside.txt", strings.NewReader("x"), "")
	assert.ErrorIs(t, err, ErrInvalidKey)

	require.NoError(t, os.MkdirAll(filepath.Join(s.Root, "documents"), 0o750))
	_, err = s.Open(ctx, "documents")
	assert.ErrorIs(t, err, ErrNotExist)
}

// fakeS3 is an in-memory S3API.
type fakeS3 struct {
	objects map[string][]byte
	putErr  error
}

func newFakeS3() *fakeS3 { return &fakeS3{objects: map[string][]byte{}} }

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	b, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	mod := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(b)),
		ContentLength: aws.Int64(int64(len(b))),
		ContentType:   aws.String("application/pdf"),
		LastModified:  &mod,
	}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	if aws.ToInt64(in.ContentLength) != int64(len(b)) {
		return nil, errors.New("content length mismatch")
	}
	f.objects[aws.ToString(in.Key)] = b
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store_SaveOpenDelete(t *testing.T) {
	fake := newFakeS3()
	s := NewS3WithClient(fake, "bucket", "/site/")
	ctx := context.Background()

	// Non-seekable reader gets buffered.
	n, err := s.Save(ctx, "documents/x.pdf", io.MultiReader(strings.NewReader("abc"), strings.NewReader("def")), "")
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
	_, stored := fake.objects["site/documents/x.pdf"]
	assert.True(t, stored, "prefix must be applied")

	obj, err := s.Open(ctx, "documents/x.pdf")
	require.NoError(t, err)
	defer obj.Body.Close()
	b, _ := io.ReadAll(obj.Body)
	assert.Equal(t, "abcdef", string(b))
	assert.Equal(t, int64(6), obj.Size)
	assert.Equal(t, 2026, obj.ModTime.Year())

	require.NoError(t, s.Delete(ctx, "documents/x.pdf"))
	_, err = s.Open(ctx, "documents/x.pdf")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestS3Store_Errors(t *testing.T) {
	fake := newFakeS3()
	fake.putErr = errors.New("boom")
	s := NewS3WithClient(fake, "bucket", "")

	_, err := s.Save(context.Background(), "a.pdf", bytes.NewReader([]byte("x")), "application/pdf")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotExist)

	_, err = s.Open(context.Background(), "../a.pdf")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

var (
	_ Store = (*LocalStore)(nil)
	_ Store = (*S3Store)(nil)
)
