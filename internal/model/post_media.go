package model

// MediaAsset 外部媒体存储中的对象，URL 与 ReferenceID 同时存在
type MediaAsset struct {
	URL         string `bson:"url" json:"url"`
	ReferenceID string `bson:"reference_id" json:"referenceId"`
}
