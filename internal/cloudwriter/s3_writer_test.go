package cloudwriter

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	puts map[string][]byte
	err  error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	if f.puts == nil {
		f.puts = make(map[string][]byte)
	}
	f.puts[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)] = body
	return &s3.PutObjectOutput{}, nil
}

func TestS3WriterUploadsOnClose(t *testing.T) {
	client := &fakeS3{}
	factory := NewS3WriterFactoryWithClient(context.Background(), client)

	w, err := factory.NewWriter("sim-inputs", "run/customers.txt")
	require.NoError(t, err)

	_, err = w.Write([]byte("1:0,5,2\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("2:1,3,4\n"))
	require.NoError(t, err)
	assert.Empty(t, client.puts, "nothing is uploaded before Close")

	require.NoError(t, w.Close())
	assert.Equal(t, "1:0,5,2\n2:1,3,4\n", string(client.puts["sim-inputs/run/customers.txt"]))

	_, err = w.Write([]byte("3:0,1,1\n"))
	assert.Error(t, err)
	assert.NoError(t, w.Close())
}

func TestS3WriterUploadError(t *testing.T) {
	denied := errors.New("access denied")
	factory := NewS3WriterFactoryWithClient(context.Background(), &fakeS3{err: denied})

	w, err := factory.NewWriter("sim-inputs", "customers.txt")
	require.NoError(t, err)
	assert.ErrorIs(t, w.Close(), denied)
}

func TestS3WriterFactoryRequiresBucket(t *testing.T) {
	_, err := NewS3WriterFactoryWithClient(context.Background(), &fakeS3{}).NewWriter("", "customers.txt")
	assert.Error(t, err)
}
