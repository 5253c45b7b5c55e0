package dto

import "Murmur/internal/model"

// PostListDTO 分页参数，缺省为第 1 页每页 10 条
type PostListDTO struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// PostPageDTO 分页结果
type PostPageDTO struct {
	TotalPosts   int64                `json:"totalPosts"`
	CurrentPage  int64                `json:"currentPage"`
	TotalPages   int64                `json:"totalPages"`
	PostsPerPage int64                `json:"postsPerPage"`
	Posts        []*model.PostDetail `json:"posts"`
}

// PostFormDTO 创建或修改帖子，图片走 multipart 的 postPicture 字段
type PostFormDTO struct {
	Content string `form:"content" json:"content"`
}

// DeleteResultDTO 删除结果
type DeleteResultDTO struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// LikeResultDTO 点赞切换结果
type LikeResultDTO struct {
	Liked       bool        `json:"liked"`
	TotalLikes  int         `json:"totalLikes"`
	UpdatedPost *model.Post `json:"updatedPost"`
}

// CommentCreateDTO 评论
type CommentCreateDTO struct {
	Comment string `json:"comment" form:"comment" validate:"max=1000"`
}

// CommentResultDTO 评论结果
type CommentResultDTO struct {
	Comment       *model.CommentDetail `json:"comment"`
	TotalComments int                  `json:"totalComments"`
	UpdatedPost   *model.PostDetail    `json:"updatedPost"`
}
