package model

// ImageOptions 图片生成表单
type ImageOptions struct {
	Prompt     string `json:"prompt" binding:"required"`
	Style      string `json:"style" binding:"required"`
	Medium     string `json:"medium" binding:"required"`
	Lighting   string `json:"lighting" binding:"required"`
	Mood       string `json:"mood" binding:"required"`
	Resolution string `json:"resolution"`
}

// ImageRequest 发送给图片生成服务的参数
type ImageRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
	N       int    `json:"n"`
}

// ImageResult 图片生成结果
type ImageResult struct {
	URL         string `json:"url"`
	ArchivedURL string `json:"archivedUrl,omitempty"`
	Prompt      string `json:"prompt"`
	Size        string `json:"size"`
}

var (
	ImageStyles    = []string{"Photorealistic", "Cartoon", "Anime", "Digital Painting", "3D Render"}
	ImageLightings = []string{"Natural", "Warm", "Cool", "Cinematic", "Dramatic"}
	ImageMediums   = []string{"Pencil Sketch", "Watercolor", "Oil Painting", "Charcoal", "Digital Brush"}
	ImageMoods     = []string{"Peaceful", "Epic", "Dark", "Happy", "Melancholic"}
)

// ImageResolution 分辨率展示标签与接口取值的对应关系
type ImageResolution struct {
	Label string `json:"label"`
	Size  string `json:"size"`
}

var ImageResolutions = []ImageResolution{
	{Label: "1024x1024", Size: "1024x1024"},
	{Label: "1024x1792 (portrait)", Size: "1024x1792"},
	{Label: "1792x1024 (landscape)", Size: "1792x1024"},
}

const DefaultImageSize = "1024x1024"
