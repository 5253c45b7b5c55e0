package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// HasLike 判断 userID 是否已点赞
func (p *Post) HasLike(userID primitive.ObjectID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// ToggleLike 已点赞则取消，否则追加；返回操作后是否处于点赞状态
func (p *Post) ToggleLike(userID primitive.ObjectID) bool {
	if p.HasLike(userID) {
		kept := make([]primitive.ObjectID, 0, len(p.Likes))
		for _, id := range p.Likes {
			if id != userID {
				kept = append(kept, id)
			}
		}
		p.Likes = kept
		return false
	}
	p.Likes = append(p.Likes, userID)
	return true
}
