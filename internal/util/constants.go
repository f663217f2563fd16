package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 头像上传
const (
	MimeImage     = "image/"
	MaxAvatarSize = 5 << 20
)

var AllowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// ContextUserKey 认证中间件写入 gin.Context 的键
const ContextUserKey = "user"
