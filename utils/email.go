package utils

import (
	"bytes"
	"html/template"
	"io"

	"github.com/gofiber/fiber/v2/log"
	"gopkg.in/gomail.v2"
)

type Attachment struct {
	Name string
	Data []byte
}

type Mail struct {
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Mailer struct {
	cfg    MailConfig
	dialer *gomail.Dialer
}

// NewMailer returns a mailer that silently drops mail when no SMTP host is set.
func NewMailer(cfg MailConfig) *Mailer {
	m := &Mailer{cfg: cfg}
	if cfg.Host != "" {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return m
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.dialer != nil
}

func (m *Mailer) Send(mail Mail) error {
	if !m.Enabled() || len(mail.To) == 0 {
		return nil
	}
	return m.dialer.DialAndSend(m.message(mail))
}

// SendAsync sends in the background and logs failures.
func (m *Mailer) SendAsync(mail Mail) {
	go func() {
		if err := m.Send(mail); err != nil {
			log.Errorw("send mail failed", "subject", mail.Subject, "error", err)
		}
	}()
}

func (m *Mailer) message(mail Mail) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", mail.To...)
	msg.SetHeader("Subject", mail.Subject)
	msg.SetBody("text/html", mail.HTML)
	for _, a := range mail.Attachments {
		data := a.Data
		msg.Attach(a.Name, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
	}
	return msg
}

// PaymentNoticeData feeds the back-office notice sent for a successful payment.
type PaymentNoticeData struct {
	MerchantTxnNo string
	GatewayTxnID  string
	Course        string
	Amount        string
	ResponseCode  string
}

var paymentNoticeTmpl = template.Must(template.New("notice").Parse(`<p>A payment was completed on the website.</p>
<table>
<tr><td>Reference</td><td>{{.MerchantTxnNo}}</td></tr>
<tr><td>Gateway id</td><td>{{.GatewayTxnID}}</td></tr>
<tr><td>Course</td><td>{{.Course}}</td></tr>
<tr><td>Amount</td><td>{{.Amount}}</td></tr>
<tr><td>Response code</td><td>{{.ResponseCode}}</td></tr>
</table>`))

type DigestData struct {
	Day       string
	Count     int
	Succeeded int
	Total     string
}

var digestTmpl = template.Must(template.New("digest").Parse(`<p>Payments for {{.Day}}</p>
<p>{{.Count}} records, {{.Succeeded}} successful, {{.Total}} collected.</p>
<p>The full list is attached.</p>`))

func RenderPaymentNotice(data PaymentNoticeData) (string, error) {
	var body bytes.Buffer
	if err := paymentNoticeTmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}

func RenderDigest(data DigestData) (string, error) {
	var body bytes.Buffer
	if err := digestTmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}
