package mailer

import (
	"fmt"
	"log"
	"time"

	"github.com/wneessen/go-mail"
)

//go:generate mockgen -destination=../mocks/mock_mailer.go -package=pkgmocks github.com/archetype-studio/archetype/pkg/mailer Mailer

// InterestNotification carries the details of a showroom selection for the
// operator notification email.
type InterestNotification struct {
	ClientEmail  string
	ClientPhone  string
	Message      string
	CompanyName  string
	ActionType   string // "quote_request" or "signed"
	DesignTitle  string
	FinalPrice   float64
	DiscountUsed bool
}

// Mailer is the interface for sending emails
type Mailer interface {
	// SendMagicCode sends an operator sign-in code
	SendMagicCode(email, code string) error
	// SendShowroomInvite sends the showroom link to an end client
	SendShowroomInvite(email, companyName, showroomURL string) error
	// SendInterestNotification alerts the operator about a showroom selection
	SendInterestNotification(email string, n InterestNotification) error
	// SendSelectionConfirmation confirms a showroom selection to the end client
	SendSelectionConfirmation(email, designTitle, actionType string, finalPrice float64) error
}

// Config holds the configuration for the mailer
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	AppBaseURL   string
}

// SMTPMailer implements the Mailer interface using SMTP
type SMTPMailer struct {
	config   *Config
	testMode bool
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(config *Config) *SMTPMailer {
	return &SMTPMailer{
		config:   config,
		testMode: false,
	}
}

// NewTestSMTPMailer creates a new SMTP mailer in test mode (won't connect to SMTP server)
func NewTestSMTPMailer(config *Config) *SMTPMailer {
	return &SMTPMailer{
		config:   config,
		testMode: true,
	}
}

// SendMagicCode sends an operator authentication code email
func (m *SMTPMailer) SendMagicCode(email, code string) error {
	subject := "Your Archetype sign-in code"

	htmlBody := fmt.Sprintf(`
	<html>
		<body>
			<h1>Your sign-in code</h1>
			<p>Hello,</p>
			<p>Your sign-in code for Archetype Studio is:</p>
			<h2 style="font-size: 24px; letter-spacing: 3px; background-color: #f5f5f5; padding: 15px; display: inline-block; border-radius: 5px;">%s</h2>
			<p>The code will expire in 10 minutes.</p>
			<p>If you did not request this code, please ignore this email.</p>
			<p>Thanks,<br>The Archetype Team</p>
		</body>
	</html>`, code)

	plainBody := fmt.Sprintf(
		"Hello,\n\nYour sign-in code for Archetype Studio is: %s\n\n"+
			"This code will expire in 10 minutes.\n\n"+
			"If you did not request this code, please ignore this email.\n\n"+
			"Thanks,\nThe Archetype Team", code)

	return m.send(email, subject, htmlBody, plainBody)
}

// SendShowroomInvite sends the showroom link to an end client
func (m *SMTPMailer) SendShowroomInvite(email, companyName, showroomURL string) error {
	subject := "Your design proposals are ready"

	htmlBody := fmt.Sprintf(`
	<html>
		<body>
			<h1>Your design proposals are ready</h1>
			<p>Hello,</p>
			<p>The design proposals for <strong>%s</strong> are ready for review.</p>
			<p>Open your private showroom to pick the design you prefer:</p>
			<p><a href="%s">View my proposals</a></p>
			<p>If the link doesn't work, copy and paste this URL into your browser:</p>
			<p>%s</p>
			<p>Thanks,<br>The Archetype Team</p>
		</body>
	</html>`, companyName, showroomURL, showroomURL)

	plainBody := fmt.Sprintf(
		"Hello,\n\nThe design proposals for %s are ready for review.\n\n"+
			"Open your private showroom to pick the design you prefer: %s\n\n"+
			"Thanks,\nThe Archetype Team", companyName, showroomURL)

	return m.send(email, subject, htmlBody, plainBody)
}

// SendInterestNotification alerts the operator about a showroom selection
func (m *SMTPMailer) SendInterestNotification(email string, n InterestNotification) error {
	action := "requested a quote for"
	if n.ActionType == "signed" {
		action = "signed for"
	}
	subject := fmt.Sprintf("%s %s \"%s\"", n.ClientEmail, action, n.DesignTitle)

	discount := ""
	if n.DiscountUsed {
		discount = " (15%% launch discount applied)"
	}

	htmlBody := fmt.Sprintf(`
	<html>
		<body>
			<h1>New showroom activity</h1>
			<p>A client just %s the design <strong>"%s"</strong>.</p>
			<ul>
				<li>Company: %s</li>
				<li>Email: %s</li>
				<li>Phone: %s</li>
				<li>Final price: %.2f&nbsp;&euro;`+discount+`</li>
			</ul>
			<p>Message from the client:</p>
			<blockquote>%s</blockquote>
		</body>
	</html>`, action, n.DesignTitle, n.CompanyName, n.ClientEmail, n.ClientPhone, n.FinalPrice, n.Message)

	plainBody := fmt.Sprintf(
		"New showroom activity\n\nA client just %s the design \"%s\".\n\n"+
			"Company: %s\nEmail: %s\nPhone: %s\nFinal price: %.2f EUR"+discount+"\n\n"+
			"Message from the client:\n%s\n",
		action, n.DesignTitle, n.CompanyName, n.ClientEmail, n.ClientPhone, n.FinalPrice, n.Message)

	return m.send(email, subject, htmlBody, plainBody)
}

// SendSelectionConfirmation confirms a showroom selection to the end client
func (m *SMTPMailer) SendSelectionConfirmation(email, designTitle, actionType string, finalPrice float64) error {
	subject := "We received your choice"

	next := "We will come back to you shortly with a detailed quote."
	if actionType == "signed" {
		next = "We will come back to you shortly to kick off the project."
	}

	htmlBody := fmt.Sprintf(`
	<html>
		<body>
			<h1>Thank you!</h1>
			<p>Hello,</p>
			<p>We received your choice for the design <strong>"%s"</strong> at %.2f&nbsp;&euro;.</p>
			<p>%s</p>
			<p>Thanks,<br>The Archetype Team</p>
		</body>
	</html>`, designTitle, finalPrice, next)

	plainBody := fmt.Sprintf(
		"Hello,\n\nWe received your choice for the design \"%s\" at %.2f EUR.\n\n%s\n\n"+
			"Thanks,\nThe Archetype Team", designTitle, finalPrice, next)

	return m.send(email, subject, htmlBody, plainBody)
}

// send builds and delivers a multipart message
func (m *SMTPMailer) send(to, subject, htmlBody, plainBody string) error {
	msg := mail.NewMsg(mail.WithNoDefaultUserAgent())

	if err := msg.FromFormat(m.config.FromName, m.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set email from address: %w", err)
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("failed to set email recipient: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)
	msg.AddAlternativeString(mail.TypeTextPlain, plainBody)

	client, err := m.createSMTPClient()
	if err != nil {
		return err
	}

	// For testing - log information if client is nil
	if client == nil {
		log.Printf("Sending email to: %s", to)
		log.Printf("From: %s <%s>", m.config.FromName, m.config.FromEmail)
		log.Printf("Subject: %s", subject)
		return nil
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// createSMTPClient creates and configures a new SMTP client
func (m *SMTPMailer) createSMTPClient() (*mail.Client, error) {
	// In test mode, return nil client to avoid SMTP connections
	if m.testMode {
		return nil, nil
	}

	clientOptions := []mail.Option{
		mail.WithPort(m.config.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(10 * time.Second),
	}

	// Only add authentication if username and password are provided
	// This allows for unauthenticated SMTP servers (e.g., local relays, port 25)
	if m.config.SMTPUsername != "" && m.config.SMTPPassword != "" {
		clientOptions = append(clientOptions,
			mail.WithUsername(m.config.SMTPUsername),
			mail.WithPassword(m.config.SMTPPassword),
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
		)
	}

	client, err := mail.NewClient(m.config.SMTPHost, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return client, nil
}

// ConsoleMailer is a development implementation that just logs emails
type ConsoleMailer struct{}

// NewConsoleMailer creates a new console mailer for development
func NewConsoleMailer() *ConsoleMailer {
	return &ConsoleMailer{}
}

// SendMagicCode logs the magic code details to console
func (m *ConsoleMailer) SendMagicCode(email, code string) error {
	fmt.Println("==============================================================")
	fmt.Println("                    OPERATOR SIGN-IN CODE                     ")
	fmt.Println("==============================================================")
	fmt.Printf("To: %s\n", email)
	fmt.Printf("Code: %s\n", code)
	fmt.Println("==============================================================")

	return nil
}

// SendShowroomInvite logs the showroom invite details to console
func (m *ConsoleMailer) SendShowroomInvite(email, companyName, showroomURL string) error {
	fmt.Println("==============================================================")
	fmt.Println("                      SHOWROOM INVITE                         ")
	fmt.Println("==============================================================")
	fmt.Printf("To: %s\n", email)
	fmt.Printf("Company: %s\n", companyName)
	fmt.Printf("Showroom URL: %s\n", showroomURL)
	fmt.Println("==============================================================")

	return nil
}

// SendInterestNotification logs the interest notification to console
func (m *ConsoleMailer) SendInterestNotification(email string, n InterestNotification) error {
	fmt.Println("==============================================================")
	fmt.Println("                    INTEREST NOTIFICATION                     ")
	fmt.Println("==============================================================")
	fmt.Printf("To: %s\n", email)
	fmt.Printf("Client: %s (%s)\n", n.ClientEmail, n.CompanyName)
	fmt.Printf("Action: %s on \"%s\" at %.2f EUR (discount: %t)\n",
		n.ActionType, n.DesignTitle, n.FinalPrice, n.DiscountUsed)
	fmt.Printf("Message: %s\n", n.Message)
	fmt.Println("==============================================================")

	return nil
}

// SendSelectionConfirmation logs the confirmation details to console
func (m *ConsoleMailer) SendSelectionConfirmation(email, designTitle, actionType string, finalPrice float64) error {
	fmt.Println("==============================================================")
	fmt.Println("                  SELECTION CONFIRMATION                      ")
	fmt.Println("==============================================================")
	fmt.Printf("To: %s\n", email)
	fmt.Printf("Design: \"%s\" (%s) at %.2f EUR\n", designTitle, actionType, finalPrice)
	fmt.Println("==============================================================")

	return nil
}
