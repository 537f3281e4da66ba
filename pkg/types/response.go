package types

// Attribute 请求结果的键值属性
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Response 变更请求的成功结果：待宿主执行的意图与属性列表
type Response struct {
	Messages   []TokenFactoryMsg `json:"messages"`
	Attributes []Attribute       `json:"attributes"`
}

// NewResponse 创建空结果
func NewResponse() *Response {
	return &Response{Messages: []TokenFactoryMsg{}, Attributes: []Attribute{}}
}

// AddAttribute 追加属性，返回自身以便链式调用
func (r *Response) AddAttribute(key, value string) *Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
	return r
}

// AddMessage 追加意图
func (r *Response) AddMessage(msg TokenFactoryMsg) *Response {
	r.Messages = append(r.Messages, msg)
	return r
}

// Attribute 按键查找属性值
func (r *Response) Attribute(key string) (string, bool) {
	for _, attr := range r.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Env 执行环境
type Env struct {
	// ContractAddress 本实例地址，用作所创建面额的 issuer 段
	ContractAddress string `json:"contract_address"`
}

// MessageInfo 请求来源
type MessageInfo struct {
	Sender string `json:"sender"`
	Funds  Coins  `json:"funds"`
}
