//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// toastScript builds the PowerShell that shows a two line toast, with an
// image when icon is set.
func toastScript(title, body, icon, app string) string {
	kind := "ToastText02"
	if icon != "" {
		kind = "ToastImageAndText02"
	}
	var sb strings.Builder
	sb.WriteString(`[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType=Windows Runtime] > $null; `)
	fmt.Fprintf(&sb, `$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::%s); `, kind)
	sb.WriteString(`$texts = $template.GetElementsByTagName("text"); `)
	fmt.Fprintf(&sb, `$texts.Item(0).AppendChild($template.CreateTextNode(%s)) > $null; `, psQuote(title))
	fmt.Fprintf(&sb, `$texts.Item(1).AppendChild($template.CreateTextNode(%s)) > $null; `, psQuote(body))
	if icon != "" {
		fmt.Fprintf(&sb, `$template.GetElementsByTagName("image").Item(0).SetAttribute("src", %s); `, psQuote(icon))
	}
	sb.WriteString(`$toast = [Windows.UI.Notifications.ToastNotification]::new($template); `)
	fmt.Fprintf(&sb, `[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(%s).Show($toast);`, psQuote(app))
	return sb.String()
}

// Notify shows a toast in the Windows notification center.
func Notify(title, body string, opts Options) error {
	script := toastScript(title, body, strings.TrimSpace(opts.IconPath), opts.appName())
	return exec.Command("powershell.exe", "-NoProfile", "-Command", script).Run()
}
