package main

import (
	"encoding/json"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/wneessen/go-mail"

	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"
)

// envelope 与 domain.MailMessage 对应，Data 延迟到知道类型之后再解析
type envelope struct {
	Type string          `json:"type"`
	To   string          `json:"to"`
	Data json.RawMessage `json:"data"`
}

// buildMessage 根据消息类型渲染模板并构建邮件
func buildMessage(from string, templateDir string, body []byte) (*mail.Msg, error) {
	mailMessage := envelope{}
	if err := json.Unmarshal(body, &mailMessage); err != nil {
		return nil, fmt.Errorf("邮件信息反序列化失败: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("无法设置邮件发件人: %w", err)
	}
	if err := msg.To(mailMessage.To); err != nil {
		return nil, fmt.Errorf("无法设置邮件收件人: %w", err)
	}

	switch mailMessage.Type {
	case domain.MailTypeWardrobeReady:
		data := domain.WardrobeReadyMailData{}
		if err := json.Unmarshal(mailMessage.Data, &data); err != nil {
			return nil, fmt.Errorf("邮件数据反序列化失败: %w", err)
		}
		tmpl, err := template.ParseFiles(filepath.Join(templateDir, "wardrobe_ready_email.html"))
		if err != nil {
			return nil, fmt.Errorf("无法解析邮件模板: %w", err)
		}
		if err := msg.SetBodyHTMLTemplate(tmpl, data); err != nil {
			return nil, fmt.Errorf("无法设置邮件正文: %w", err)
		}
		msg.Subject("EcoCloset - 你的胶囊衣橱已生成")
	default:
		return nil, fmt.Errorf("不支持的邮件类型 %s", mailMessage.Type)
	}

	return msg, nil
}
