package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/TanakaAkihiro0930/SocialEcho/client"
)

func (a *app) newCreatePostCmd() *cobra.Command {
	var body, communityID, userID, filePath string

	cmd := &cobra.Command{
		Use:   "create-post",
		Short: "Create a post, optionally with an attached file",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := client.NewCreatePostRequest(body, userID, communityID)
			if filePath != "" {
				f, err := os.Open(filePath)
				if err != nil {
					return fmt.Errorf("open file: %w", err)
				}
				defer f.Close()
				req.File = &client.FilePart{
					Name:        filepath.Base(filePath),
					ContentType: mime.TypeByExtension(filepath.Ext(filePath)),
					Reader:      f,
				}
			}
			return a.run(cmd, "create-post", func(ctx context.Context, c *client.Client) client.Result {
				return c.CreatePost(ctx, req)
			})
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "Post body (required)")
	cmd.Flags().StringVar(&communityID, "community", "", "Community ID (required)")
	cmd.Flags().StringVar(&userID, "user", "", "Author user ID")
	cmd.Flags().StringVar(&filePath, "file", "", "Path of an image or video to attach")

	_ = cmd.MarkFlagRequired("body")
	_ = cmd.MarkFlagRequired("community")

	return cmd
}

func pageFlags(cmd *cobra.Command, limit, skip *int) {
	cmd.Flags().IntVar(limit, "limit", client.DefaultLimit, "Page size")
	cmd.Flags().IntVar(skip, "skip", client.DefaultSkip, "Number of posts to skip")
}

func (a *app) newGetPostsCmd() *cobra.Command {
	var userID string
	var limit, skip int

	cmd := &cobra.Command{
		Use:   "get-posts",
		Short: "List posts for a user's communities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "get-posts", func(ctx context.Context, c *client.Client) client.Result {
				return c.GetPosts(ctx, userID, client.WithLimit(limit), client.WithSkip(skip))
			})
		},
	}
	cmd.Flags().StringVar(&userID, "user-id", "", "User ID (required)")
	pageFlags(cmd, &limit, &skip)
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}

func (a *app) newGetCommunityPostsCmd() *cobra.Command {
	var communityID string
	var limit, skip int

	cmd := &cobra.Command{
		Use:   "get-community-posts",
		Short: "List posts of a community",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "get-community-posts", func(ctx context.Context, c *client.Client) client.Result {
				return c.GetComPosts(ctx, communityID, client.WithLimit(limit), client.WithSkip(skip))
			})
		},
	}
	cmd.Flags().StringVar(&communityID, "community-id", "", "Community ID (required)")
	pageFlags(cmd, &limit, &skip)
	_ = cmd.MarkFlagRequired("community-id")
	return cmd
}

// postIDCmd builds a command taking only --id.
func (a *app) postIDCmd(use, short string, call func(context.Context, *client.Client, string) client.Result) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, use, func(ctx context.Context, c *client.Client) client.Result {
				return call(ctx, c, id)
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Post ID (required)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func (a *app) newDeletePostCmd() *cobra.Command {
	return a.postIDCmd("delete-post", "Delete a post", func(ctx context.Context, c *client.Client, id string) client.Result {
		return c.DeletePost(ctx, id)
	})
}

func (a *app) newGetCommentsCmd() *cobra.Command {
	return a.postIDCmd("get-comments", "List the comments of a post", func(ctx context.Context, c *client.Client, id string) client.Result {
		return c.GetComments(ctx, id)
	})
}

func (a *app) newSaveCmd() *cobra.Command {
	return a.postIDCmd("save", "Save a post for the signed-in user", func(ctx context.Context, c *client.Client, id string) client.Result {
		return c.SavePost(ctx, id)
	})
}

func (a *app) newUnsaveCmd() *cobra.Command {
	return a.postIDCmd("unsave", "Remove a post from the signed-in user's saved posts", func(ctx context.Context, c *client.Client, id string) client.Result {
		return c.UnsavePost(ctx, id)
	})
}

// likeCmd builds like/unlike, which take --id and --user-id.
func (a *app) likeCmd(use, short string, call func(ctx context.Context, c *client.Client, id, userID string) client.Result) *cobra.Command {
	var id, userID string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, use, func(ctx context.Context, c *client.Client) client.Result {
				return call(ctx, c, id, userID)
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Post ID (required)")
	cmd.Flags().StringVar(&userID, "user-id", "", "User ID (required)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}

func (a *app) newLikeCmd() *cobra.Command {
	return a.likeCmd("like", "Like a post", func(ctx context.Context, c *client.Client, id, userID string) client.Result {
		return c.LikePost(ctx, id, userID)
	})
}

func (a *app) newUnlikeCmd() *cobra.Command {
	return a.likeCmd("unlike", "Remove a like from a post", func(ctx context.Context, c *client.Client, id, userID string) client.Result {
		return c.UnlikePost(ctx, id, userID)
	})
}

func (a *app) newCommentCmd() *cobra.Command {
	var id, body, userID string

	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Add a comment to a post",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "comment", func(ctx context.Context, c *client.Client) client.Result {
				return c.AddComment(ctx, id, client.NewComment{Body: body, User: userID})
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Post ID (required)")
	cmd.Flags().StringVar(&body, "body", "", "Comment text (required)")
	cmd.Flags().StringVar(&userID, "user-id", "", "Comment author (defaults to the signed-in user)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("body")
	return cmd
}

func (a *app) newGetSavedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get-saved",
		Short: "List the signed-in user's saved posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "get-saved", func(ctx context.Context, c *client.Client) client.Result {
				return c.GetSavedPosts(ctx)
			})
		},
	}
}

func (a *app) newGetPublicPostsCmd() *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "get-public-posts",
		Short: "List all posts authored by a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "get-public-posts", func(ctx context.Context, c *client.Client) client.Result {
				return c.GetPublicPosts(ctx, userID)
			})
		},
	}
	cmd.Flags().StringVar(&userID, "user-id", "", "User ID (required)")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}
