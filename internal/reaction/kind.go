package reaction

import (
	"fmt"
)

// Kind 是七种固定反应之一。
// 它是一个封闭的枚举，所有按反应分发的逻辑都通过 switch 完成，而不是拼接字段名。
type Kind int

const (
	Relatable Kind = iota
	Deep
	Hugs
	Laugh
	Sad
	ThumbUp
	HugEmoji

	// NumKinds 是反应种类的总数
	NumKinds = 7
)

// All 按展示顺序列出全部反应
var All = [NumKinds]Kind{Relatable, Deep, Hugs, Laugh, Sad, ThumbUp, HugEmoji}

// Info 描述一种反应在界面上的呈现方式
type Info struct {
	Emoji      string
	VotedEmoji string
	Label      string
}

var infos = [NumKinds]Info{
	Relatable: {Emoji: "🔥", VotedEmoji: "❤️‍🔥", Label: "Relatable"},
	Deep:      {Emoji: "🤔", VotedEmoji: "🧠", Label: "Deep"},
	Hugs:      {Emoji: "🫂", VotedEmoji: "🤗", Label: "Hugs"},
	Laugh:     {Emoji: "😂", VotedEmoji: "🤣", Label: "Ketawa"},
	Sad:       {Emoji: "😢", VotedEmoji: "😭", Label: "Sedih"},
	ThumbUp:   {Emoji: "👍", VotedEmoji: "👍🏽", Label: "Jempol"},
	HugEmoji:  {Emoji: "🥺", VotedEmoji: "🥹", Label: "Peluk"},
}

var names = [NumKinds]string{
	Relatable: "relatable",
	Deep:      "deep",
	Hugs:      "hugs",
	Laugh:     "laugh",
	Sad:       "sad",
	ThumbUp:   "thumbUp",
	HugEmoji:  "hugEmoji",
}

// columns 是计数器在SQL表中的列名
var columns = [NumKinds]string{
	Relatable: "relatable_count",
	Deep:      "deep_count",
	Hugs:      "hugs_count",
	Laugh:     "laugh_count",
	Sad:       "sad_count",
	ThumbUp:   "thumb_up_count",
	HugEmoji:  "hug_emoji_count",
}

// Valid 报告k是否是七种反应之一
func (k Kind) Valid() bool {
	return k >= 0 && k < NumKinds
}

// String 返回反应的名字，例如 "thumbUp"
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return names[k]
}

// Field 返回计数器在文档中的字段名，例如 "thumbUpCount"
func (k Kind) Field() string {
	return k.String() + "Count"
}

// Column 返回计数器在SQL表中的列名
func (k Kind) Column() string {
	if !k.Valid() {
		return ""
	}
	return columns[k]
}

// Info 返回反应的展示信息
func (k Kind) Info() Info {
	if !k.Valid() {
		return Info{}
	}
	return infos[k]
}

// Parse 将名字解析为反应种类。名字区分大小写，与 String 的输出一致。
func Parse(name string) (Kind, error) {
	for _, k := range All {
		if names[k] == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("未知的反应类型: %q", name)
}

// MarshalText 让 Kind 可以作为JSON对象的键
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("无效的反应类型: %d", int(k))
	}
	return []byte(names[k]), nil
}

// UnmarshalText 是 MarshalText 的逆操作
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Counts 保存一个条目全部七个计数器
type Counts [NumKinds]int

// Get 返回指定反应的计数
func (c Counts) Get(k Kind) int {
	if !k.Valid() {
		return 0
	}
	return c[k]
}

// Set 设置指定反应的计数
func (c *Counts) Set(k Kind, n int) {
	if k.Valid() {
		c[k] = n
	}
}

// Total 返回所有反应计数之和
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}
