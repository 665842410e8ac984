package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/berkaygencdogan/camp-track-backend/internal/models"
)

func media(urls ...string) []models.PostMedia {
	out := make([]models.PostMedia, 0, len(urls))
	for _, u := range urls {
		out = append(out, models.PostMedia{URL: u, Type: "image"})
	}
	return out
}

func TestPosts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.user(t, "u1")
	f.user(t, "u2")

	post, err := f.Posts.CreatePost(ctx, "u1", PostInput{Caption: "sunrise", Medias: media("http://img/a", "http://img/b")})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	t.Run("create snapshots the author", func(t *testing.T) {
		got, err := f.Posts.GetPost(ctx, post.ID)
		if err != nil {
			t.Fatalf("GetPost failed: %v", err)
		}
		if got.Username != "u1" || got.Likes != 0 || len(got.Medias) != 2 {
			t.Errorf("unexpected post: %+v", got)
		}
	})

	t.Run("create validation", func(t *testing.T) {
		_, err := f.Posts.CreatePost(ctx, "u1", PostInput{Caption: "empty"})
		assertKind(t, err, KindValidation)
		_, err = f.Posts.CreatePost(ctx, "u1", PostInput{Medias: []models.PostMedia{{Type: "image"}}})
		assertKind(t, err, KindValidation)
		_, err = f.Posts.CreatePost(ctx, "ghost", PostInput{Medias: media("http://img/x")})
		assertKind(t, err, KindNotFound)
	})

	t.Run("like toggles and keeps the count in step", func(t *testing.T) {
		got, err := f.Posts.ToggleLike(ctx, post.ID, "u2")
		if err != nil {
			t.Fatalf("ToggleLike failed: %v", err)
		}
		assertStrings(t, "likedBy", got.LikedBy, []string{"u2"})
		if got.Likes != 1 {
			t.Errorf("likes: got %d, want 1", got.Likes)
		}

		got, _ = f.Posts.ToggleLike(ctx, post.ID, "u2")
		if len(got.LikedBy) != 0 || got.Likes != 0 {
			t.Errorf("after unlike: got %v / %d", got.LikedBy, got.Likes)
		}

		_, err = f.Posts.ToggleLike(ctx, "missing", "u2")
		assertKind(t, err, KindNotFound)
	})

	t.Run("only the author edits", func(t *testing.T) {
		caption := "sunset"
		_, err := f.Posts.EditPost(ctx, post.ID, "u2", PostEdit{Caption: &caption})
		assertKind(t, err, KindForbidden)

		got, err := f.Posts.EditPost(ctx, post.ID, "u1", PostEdit{Caption: &caption})
		if err != nil {
			t.Fatalf("EditPost failed: %v", err)
		}
		if got.Caption != "sunset" || len(got.Medias) != 2 || got.UpdatedAt == 0 {
			t.Errorf("unexpected edit result: %+v", got)
		}

		_, err = f.Posts.EditPost(ctx, post.ID, "u1", PostEdit{})
		assertKind(t, err, KindValidation)
	})

	t.Run("RemoveMedia keeps at least one", func(t *testing.T) {
		left, err := f.Posts.RemoveMedia(ctx, post.ID, "u1", "http://img/a")
		if err != nil {
			t.Fatalf("RemoveMedia failed: %v", err)
		}
		if len(left) != 1 || left[0].URL != "http://img/b" {
			t.Errorf("medias: got %+v", left)
		}
		_, err = f.Posts.RemoveMedia(ctx, post.ID, "u1", "http://img/b")
		assertKind(t, err, KindValidation)
	})

	t.Run("comments", func(t *testing.T) {
		first, err := f.Posts.AddComment(ctx, post.ID, "u2", "nice")
		if err != nil {
			t.Fatalf("AddComment failed: %v", err)
		}
		second, _ := f.Posts.AddComment(ctx, post.ID, "u1", "thanks")

		list, err := f.Posts.ListComments(ctx, post.ID)
		if err != nil {
			t.Fatalf("ListComments failed: %v", err)
		}
		if len(list) != 2 || list[0].ID != first.ID || list[1].ID != second.ID {
			t.Fatalf("expected oldest first, got %+v", list)
		}

		err = f.Posts.DeleteComment(ctx, post.ID, second.ID, "u2")
		assertKind(t, err, KindForbidden)
		if err := f.Posts.DeleteComment(ctx, post.ID, first.ID, "u1"); err != nil {
			t.Fatalf("post author DeleteComment failed: %v", err)
		}
		if err := f.Posts.DeleteComment(ctx, post.ID, first.ID, "u1"); err != nil {
			t.Errorf("deleting twice should succeed, got %v", err)
		}

		_, err = f.Posts.AddComment(ctx, "missing", "u2", "hi")
		assertKind(t, err, KindNotFound)
	})

	t.Run("delete removes the post and its comments", func(t *testing.T) {
		err := f.Posts.DeletePost(ctx, post.ID, "u2")
		assertKind(t, err, KindForbidden)

		if err := f.Posts.DeletePost(ctx, post.ID, "u1"); err != nil {
			t.Fatalf("DeletePost failed: %v", err)
		}
		_, err = f.Posts.GetPost(ctx, post.ID)
		assertKind(t, err, KindNotFound)

		left, err := f.Posts.comments(ctx, post.ID)
		if err != nil {
			t.Fatalf("comments failed: %v", err)
		}
		if len(left) != 0 {
			t.Errorf("expected comments to be deleted, got %d", len(left))
		}
	})
}

func TestListPosts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.user(t, "u1")
	f.user(t, "u2")

	older, _ := f.Posts.CreatePost(ctx, "u1", PostInput{Medias: media("http://img/1")})
	newer, _ := f.Posts.CreatePost(ctx, "u1", PostInput{Medias: media("http://img/2")})
	f.Posts.CreatePost(ctx, "u2", PostInput{Medias: media("http://img/3")})

	posts, err := f.Posts.ListPosts(ctx, "u1")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 2 || posts[0].ID != newer.ID || posts[1].ID != older.ID {
		t.Errorf("expected newest first for u1, got %+v", posts)
	}
}

func TestToggleLike_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	set := New(store, nil)

	author := models.NewUser("author@example.com", "author", "hash")
	if err := set.Users.CreateUser(ctx, author); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	post, err := set.Posts.CreatePost(ctx, author.ID, PostInput{Medias: media("http://img/1")})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	const likers = 8
	var wg sync.WaitGroup
	for i := 0; i < likers; i++ {
		wg.Add(1)
		go func(uid string) {
			defer wg.Done()
			if _, err := set.Posts.ToggleLike(ctx, post.ID, uid); err != nil {
				t.Errorf("ToggleLike(%s) failed: %v", uid, err)
			}
		}(string(rune('a' + i)))
	}
	wg.Wait()

	got, err := set.Posts.GetPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if len(got.LikedBy) != likers || got.Likes != likers {
		t.Errorf("expected %d likes, got likedBy=%v likes=%d", likers, got.LikedBy, got.Likes)
	}
}
