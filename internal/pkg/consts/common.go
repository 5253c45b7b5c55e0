package consts

const (
	MimePrefixImage = "image"
	MimePrefixAudio = "audio"
	MimePrefixVideo = "video"
)

const (
	// IdentityKey gin.Context 中保存已认证用户
	IdentityKey = "identity"
	// TokenCookie 登录令牌 cookie 名
	TokenCookie = "token"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

const (
	EventsDriverNone  = "none"
	EventsDriverKafka = "kafka"
	EventsDriverNats  = "nats"
)
