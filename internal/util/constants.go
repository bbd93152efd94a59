package util

// StorageConfig.Type 的取值
const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 上传限制：视频按扩展名和嗅探结果双重校验，附件按内容类型前缀校验
const (
	MimeVideo       = "video/"
	MimeImage       = "image/"
	MimePDF         = "application/pdf"
	MimeOctetStream = "application/octet-stream"

	MaxVideoSize      = 2 << 30
	MaxAttachmentSize = 50 << 20
)

var (
	AllowedVideoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".webm"}
	AllowedAttachmentTypes = []string{MimeImage, MimePDF, "text/", "application/zip", "application/vnd.tcpdump.pcap", MimeOctetStream}
)

// gin 上下文键
const (
	ContextUserKey = "user"
)
