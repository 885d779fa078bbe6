package http

import (
	"net/http"
	"strconv"
	"time"

	"chronicle/internal/domain"

	"github.com/gin-gonic/gin"
)

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type releaseRequest struct {
	Released bool `json:"released"`
}

type commentRequest struct {
	Content string `json:"content"`
}

type postResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Released    bool   `json:"released"`
	ReleaseDate string `json:"release_date"`
}

type commentResponse struct {
	ID        int64  `json:"id"`
	PostID    int64  `json:"post_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type postDetailResponse struct {
	postResponse
	Comments []commentResponse `json:"comments"`
}

type postListResponse struct {
	Posts []postResponse `json:"posts"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
	Total int64          `json:"total"`
}

func toPostResponse(post domain.Post) postResponse {
	return postResponse{
		ID:          post.ID,
		Title:       post.Title,
		Content:     post.Content,
		Released:    post.Released,
		ReleaseDate: post.ReleaseDate.UTC().Format(time.RFC3339),
	}
}

func toCommentResponse(comment domain.Comment) commentResponse {
	return commentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func postIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid post id")
		return 0, false
	}
	return id, true
}

func (s *Server) handleCreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	post, err := s.posts.Create(c.Request.Context(), req.Title, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPostResponse(post))
}

func (s *Server) handleListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	posts, total, err := s.posts.List(c.Request.Context(), page, size)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]postResponse, 0, len(posts))
	for _, post := range posts {
		out = append(out, toPostResponse(post))
	}
	c.JSON(http.StatusOK, postListResponse{
		Posts: out,
		Page:  page,
		Size:  size,
		Total: total,
	})
}

func (s *Server) handleGetPost(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	post, comments, err := s.posts.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	out := postDetailResponse{
		postResponse: toPostResponse(post),
		Comments:     make([]commentResponse, 0, len(comments)),
	}
	for _, comment := range comments {
		out.Comments = append(out.Comments, toCommentResponse(comment))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleUpdatePost(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	if err := s.posts.Update(c.Request.Context(), id, req.Title, req.Content); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post updated"})
}

func (s *Server) handleDeletePost(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	if err := s.posts.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

func (s *Server) handleChangeReleaseStatus(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	var req releaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	if err := s.posts.ChangeReleaseStatus(c.Request.Context(), id, req.Released); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "release status updated"})
}

func (s *Server) handleAddComment(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	comment, err := s.posts.AddComment(c.Request.Context(), id, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCommentResponse(comment))
}
