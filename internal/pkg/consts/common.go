package consts

// 媒体类型
const (
	MediaTypeImage = "img"
	MediaTypeGif   = "gif"
	MediaTypeVideo = "vid"
	MediaTypeYt    = "yt"
)

// MimeExt 允许上传的 MIME 类型及其落盘扩展名
var MimeExt = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
	"video/mp4":  "mp4",
	"video/webm": "webm",
	// 浏览器嗅探通常给出 application/ogg
	"application/ogg": "ogv",
	"audio/ogg":       "ogv",
	"video/ogg":       "ogv",
}

// HeaderDeviceID deviceId 的请求头回退来源
const HeaderDeviceID = "x-device-id"

// 查询参数钳制范围
const (
	NearRadiusMinMeters = 50
	NearRadiusMaxMeters = 5000
	NearRadiusDefault   = 1000
	NearLimitMax        = 200
	NearLimitDefault    = 50

	RecentLimitMax     = 400
	RecentLimitDefault = 100

	HistoryLimitMax     = 50
	HistoryLimitDefault = 20

	CommentMaxRunes   = 500
	DeviceIDMaxLength = 128
)
