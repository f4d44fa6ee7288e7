package app

import (
	"context"
	"fmt"
	"sync/atomic"

	"cursos/internal/content"
)

// fakeSource serves a fixed collection, or err for every call. When release
// is set, each load signals started and then blocks until release is closed.
type fakeSource struct {
	docs    []content.Document
	err     error
	loads   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func newFakeSource(docs ...content.Document) *fakeSource {
	return &fakeSource{docs: docs}
}

// blocking makes every load wait for the returned release func.
func (f *fakeSource) blocking() (started <-chan struct{}, release func()) {
	f.started = make(chan struct{}, 1)
	f.release = make(chan struct{})
	return f.started, func() { close(f.release) }
}

func testDoc(slug, title, body string) content.Document {
	return content.Document{Course: content.Course{Slug: slug, Title: title}, Body: body}
}

func (f *fakeSource) AllFrontMatter(ctx context.Context, category string) ([]content.Course, error) {
	docs, err := f.AllDocuments(ctx, category)
	if err != nil {
		return nil, err
	}
	return content.Courses(docs), nil
}

func (f *fakeSource) AllDocuments(ctx context.Context, category string) ([]content.Document, error) {
	f.loads.Add(1)
	if f.release != nil {
		select {
		case f.started <- struct{}{}:
		default:
		}
		<-f.release
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	if category != CoursesCategory {
		return nil, fmt.Errorf("unexpected category %q", category)
	}
	out := make([]content.Document, len(f.docs))
	copy(out, f.docs)
	return out, nil
}

func (f *fakeSource) FileBySlug(ctx context.Context, category, slug string) (content.Document, error) {
	if f.err != nil {
		return content.Document{}, f.err
	}
	for _, d := range f.docs {
		if d.Slug == slug {
			return d, nil
		}
	}
	return content.Document{}, fmt.Errorf("%w: %q", content.ErrNotFound, slug)
}
