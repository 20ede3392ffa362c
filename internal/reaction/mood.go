package reaction

import "math/rand"

// moods 是条目卡片角落里随机显示的心情emoji
var moods = [...]string{"😔", "😟", "🙁", "😥", "💔", "🫠", "💭", "😢", "😞"}

// RandomMood 随机返回一个心情emoji，只用于展示
func RandomMood() string {
	return moods[rand.Intn(len(moods))]
}

// Moods 返回全部心情emoji
func Moods() []string {
	return append([]string(nil), moods[:]...)
}
