package model

// 前后端通信消息结构，Content 为 JSON 字符串
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// 请求类型
const (
	TypeEnv      = "env"
	TypeStart    = "start"
	TypeStop     = "stop"
	TypeReset    = "reset"
	TypePush     = "push"
	TypeTracers  = "tracers"
	TypeSnapshot = "snapshot"
	TypeSensor   = "sensor"
)

// 响应类型
const (
	TypeEnvSet   = "envSet"
	TypeStarted  = "started"
	TypeStopped  = "stopped"
	TypeFrame    = "frame"
	TypeUnstable = "unstable"
	TypeError    = "error"
)

// 前端设置的流动参数
type Env struct {
	Speed     float64 `json:"speed"`
	Viscosity float64 `json:"viscosity"`
	Steps     int     `json:"steps"`
	Tracers   bool    `json:"tracers"`
	Curl      bool    `json:"curl"` // 帧数据是否附带涡量
}

// 拖拽请求，格点坐标和速度
type PushReq struct {
	X  int     `json:"x"`
	Y  int     `json:"y"`
	UX float64 `json:"ux"`
	UY float64 `json:"uy"`
}

// 探针请求
type SensorReq struct {
	X int `json:"x"`
	Y int `json:"y"`
}
