package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"roundtable-api/core/cache"
	appErrors "roundtable-api/core/errors"
	"roundtable-api/modules/gamesystems/dto"
	"roundtable-api/modules/gamesystems/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type fakeRepo struct {
	systems  []entity.GameSystem
	slugs    map[string]bool
	searches int
	attached *entity.MediaAsset
}

func (f *fakeRepo) Search(_ context.Context, q string, limit int) ([]entity.GameSystem, error) {
	f.searches++
	var out []entity.GameSystem
	for _, gs := range f.systems {
		if strings.Contains(strings.ToLower(gs.Name), strings.ToLower(q)) && len(out) < limit {
			out = append(out, gs)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id int) (*entity.GameSystemDetail, error) {
	for _, gs := range f.systems {
		if gs.ID == id {
			return &entity.GameSystemDetail{GameSystem: gs}, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) FindBySlug(_ context.Context, s string) (*entity.GameSystemDetail, error) {
	for _, gs := range f.systems {
		if gs.Slug != nil && *gs.Slug == s {
			return &entity.GameSystemDetail{GameSystem: gs}, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) SlugExists(_ context.Context, s string) (bool, error) { return f.slugs[s], nil }

func (f *fakeRepo) Create(_ context.Context, gs *entity.GameSystem) (*entity.GameSystem, error) {
	c := *gs
	c.ID = len(f.systems) + 1
	f.systems = append(f.systems, c)
	f.slugs[*c.Slug] = true
	return &c, nil
}

func (f *fakeRepo) AttachHeroImage(_ context.Context, a *entity.MediaAsset) (*entity.MediaAsset, error) {
	c := *a
	c.ID = 99
	f.attached = &c
	return &c, nil
}

type fakeStore struct {
	keys []string
	err  error
}

func (s *fakeStore) Put(_ context.Context, key string, _ []byte, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.keys = append(s.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func newRedisCache(t *testing.T) cache.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	return cache.NewRedisCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestSearchCachesUntilCreate(t *testing.T) {
	repo := &fakeRepo{systems: []entity.GameSystem{{ID: 1, Name: "Pathfinder"}}, slugs: map[string]bool{}}
	svc := NewGameSystemService(repo, newRedisCache(t), nil, 0)
	ctx := context.Background()

	if got, _ := svc.Search(ctx, "pa"); len(got) != 0 || repo.searches != 0 {
		t.Fatal("short queries must not reach the repository")
	}

	for i := 0; i < 2; i++ {
		got, err := svc.Search(ctx, "Path")
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 {
			t.Fatalf("want 1 result, got %d", len(got))
		}
	}
	if repo.searches != 1 {
		t.Fatalf("second search should hit the cache, got %d repo calls", repo.searches)
	}

	if _, err := svc.Create(ctx, "u1", &dto.CreateGameSystemRequest{Name: "Pathfinder 2e"}); err != nil {
		t.Fatal(err)
	}
	got, _ := svc.Search(ctx, "path")
	if len(got) != 2 || repo.searches != 2 {
		t.Fatalf("create should invalidate the cache, got %d results after %d calls", len(got), repo.searches)
	}
}

func TestCreateDedupesSlug(t *testing.T) {
	repo := &fakeRepo{slugs: map[string]bool{"call-of-cthulhu": true}}
	svc := NewGameSystemService(repo, nil, nil, 0)

	resp, err := svc.Create(context.Background(), "u1", &dto.CreateGameSystemRequest{Name: "Call of Cthulhu"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Slug == nil || *resp.Slug != "call-of-cthulhu-2" {
		t.Fatalf("unexpected slug %v", resp.Slug)
	}
}

func TestUploadHeroImage(t *testing.T) {
	store := &fakeStore{}
	repo := &fakeRepo{systems: []entity.GameSystem{{ID: 4, Name: "Blades"}}, slugs: map[string]bool{}}
	svc := NewGameSystemService(repo, nil, store, 0)
	ctx := context.Background()
	req := &dto.UploadHeroImageRequest{FileName: "cover.png", ContentType: "image/png", Body: []byte("png")}

	if _, err := svc.UploadHeroImage(ctx, "u1", 5, req); err == nil || err.Code != appErrors.ErrNotFound {
		t.Fatalf("unknown system: want NOT_FOUND, got %v", err)
	}

	asset, err := svc.UploadHeroImage(ctx, "u1", 4, req)
	if err != nil {
		t.Fatal(err)
	}
	if asset.ID != 99 || len(store.keys) != 1 {
		t.Fatalf("unexpected asset %+v keys %v", asset, store.keys)
	}
	if !strings.HasPrefix(store.keys[0], "game-systems/4/hero/") || !strings.HasSuffix(store.keys[0], ".png") {
		t.Fatalf("unexpected key %q", store.keys[0])
	}
	if repo.attached.URL != "https://cdn.example.com/"+store.keys[0] {
		t.Fatalf("asset should point at the uploaded object, got %q", repo.attached.URL)
	}

	store.err = errors.New("s3 down")
	repo.attached = nil
	if _, err := svc.UploadHeroImage(ctx, "u1", 4, req); err == nil {
		t.Fatal("expected upload failure")
	}
	if repo.attached != nil {
		t.Fatal("no media row should be written when the upload fails")
	}
}

func TestUploadHeroImageWithoutStore(t *testing.T) {
	svc := NewGameSystemService(&fakeRepo{}, nil, nil, 0)
	_, err := svc.UploadHeroImage(context.Background(), "u1", 1, &dto.UploadHeroImageRequest{})
	if err == nil || err.Code != appErrors.ErrInternalServer {
		t.Fatalf("want SERVER_ERROR, got %v", err)
	}
}
