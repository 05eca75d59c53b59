package publish

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/marks/internal/errors"
	"github.com/vango-dev/marks/pkg/render"
	"github.com/vango-dev/marks/pkg/vdom"
)

func TestCleanKey(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{"chart.svg", "chart.svg", false},
		{"nightly/chart.svg", "nightly/chart.svg", false},
		{"/chart.svg", "chart.svg", false},
		{"", "", true},
		{"../chart.svg", "", true},
		{"a/../../b", "", true},
		{`a\b`, "", true},
	}
	for _, tt := range tests {
		got, err := cleanKey(tt.key)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("cleanKey(%q) = %q, %v; want %q, err=%v", tt.key, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	loc, err := store.Put(context.Background(), "runs/one.svg", "image/svg+xml", []byte("<svg/>"))
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if want := filepath.Join(dir, "runs", "one.svg"); loc != want {
		t.Errorf("location = %q, want %q", loc, want)
	}
	data, err := os.ReadFile(loc)
	if err != nil || string(data) != "<svg/>" {
		t.Errorf("file content = %q, %v", data, err)
	}

	if _, err := store.Put(context.Background(), "../escape", "", nil); !stderrors.Is(err, ErrInvalidKey) {
		t.Errorf("traversal err = %v, want ErrInvalidKey", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Put(ctx, "late.svg", "", nil); err == nil {
		t.Error("Put with cancelled context should fail")
	}
}

type fakeS3 struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	var buf bytes.Buffer
	buf.ReadFrom(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, buf.Bytes())
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store(t *testing.T) {
	fake := &fakeS3{}
	store := NewS3Store(fake, "charts", "nightly/")

	loc, err := store.Put(context.Background(), "latency.png", "image/png", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if loc != "s3://charts/nightly/latency.png" {
		t.Errorf("location = %q", loc)
	}
	in := fake.inputs[0]
	if aws.ToString(in.Bucket) != "charts" || aws.ToString(in.Key) != "nightly/latency.png" {
		t.Errorf("bucket/key = %s/%s", aws.ToString(in.Bucket), aws.ToString(in.Key))
	}
	if aws.ToString(in.ContentType) != "image/png" || len(fake.bodies[0]) != 3 {
		t.Errorf("content type %q, body %v", aws.ToString(in.ContentType), fake.bodies[0])
	}
	if in.Metadata["published-at"] == "" {
		t.Error("missing published-at metadata")
	}

	fake.err = stderrors.New("denied")
	if _, err := store.Put(context.Background(), "x.svg", "", nil); err == nil {
		t.Error("Put should surface client errors")
	}
}

func testChart() *render.Chart {
	row := vdom.G(vdom.Circle(vdom.R(4), vdom.Fill("steelblue"), vdom.Translate(10, 0)))
	c := render.NewChart(40)
	c.Background = "white"
	return c.Add(render.Row{Node: row, Height: 20})
}

func TestPublisher(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	locs, err := NewPublisher(store).Publish(context.Background(), "demo", testChart())
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if len(locs) != 2 {
		t.Fatalf("locations = %v, want svg and png", locs)
	}

	svg, _ := os.ReadFile(locs[0])
	if !bytes.HasPrefix(svg, []byte("<?xml")) || !bytes.Contains(svg, []byte("<circle")) {
		t.Errorf("svg = %s", svg)
	}
	png, _ := os.ReadFile(locs[1])
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("png header = %q", png[:min(len(png), 8)])
	}
}

func TestPublisherErrors(t *testing.T) {
	fake := &fakeS3{err: stderrors.New("denied")}
	_, err := NewPublisher(NewS3Store(fake, "b", "")).WithFormats(SVG).Publish(context.Background(), "demo", testChart())
	if got := errors.CodeOf(err); got != "M401" {
		t.Errorf("code = %q, want M401", got)
	}

	_, err = NewPublisher(&FileStore{dir: t.TempDir()}).WithFormats("gif").Publish(context.Background(), "demo", testChart())
	if got := errors.CodeOf(err); got != "M303" {
		t.Errorf("code = %q, want M303", got)
	}
}
