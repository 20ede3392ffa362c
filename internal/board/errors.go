package board

import "errors"

// 以下错误对应界面上的几种反馈。调用方用 errors.Is 判断类别。
var (
	// ErrFetch 表示读取条目或评论失败，界面显示可重试的错误横幅
	ErrFetch = errors.New("加载失败")
	// ErrUpdate 表示反应计数写入失败，本地状态保持不变
	ErrUpdate = errors.New("更新反应失败")
	// ErrSubmit 表示评论或条目写入失败，表单内容被保留
	ErrSubmit = errors.New("提交失败")
	// ErrValidation 表示表单内容不合法，没有发出任何存储请求
	ErrValidation = errors.New("输入不合法")
	// ErrDuplicateVote 不是故障：这个浏览器已经给该条目投过这种反应
	ErrDuplicateVote = errors.New("已经给过这个反应")
	// ErrUnknownEntry 表示条目不在当前列表中
	ErrUnknownEntry = errors.New("条目不在列表中")
	// ErrUnknownReaction 表示反应类型不是七种之一
	ErrUnknownReaction = errors.New("未知的反应类型")
	// ErrSubmitInProgress 表示同一条目的评论正在提交中
	ErrSubmitInProgress = errors.New("评论正在提交中")
	// ErrVoteInProgress 表示同一 (条目, 反应) 的投票正在写入中
	ErrVoteInProgress = errors.New("投票正在提交中")
)
