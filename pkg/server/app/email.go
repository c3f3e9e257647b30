/* Copyright 2025 Revue Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package app

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/revuehub/revue/pkg/server/database"
	"github.com/revuehub/revue/pkg/server/mailer"
)

func getDomainFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Wrap(err, "parsing url")
	}

	host := u.Hostname()
	parts := strings.Split(host, ".")
	if len(parts) < 2 {
		return host, nil
	}
	domain := parts[len(parts)-2] + "." + parts[len(parts)-1]

	return domain, nil
}

// getNoreplySender derives the sender address from the configured web url
func (a *App) getNoreplySender() (string, error) {
	domain, err := getDomainFromURL(a.Config.WebURL)
	if err != nil {
		return "", errors.Wrap(err, "parsing web url")
	}

	return fmt.Sprintf("noreply@%s", domain), nil
}

// SendConfirmationCodeEmail sends the confirmation code to the user's
// registered email address
func (a *App) SendConfirmationCodeEmail(user database.User, code string) error {
	from, err := a.getNoreplySender()
	if err != nil {
		return errors.Wrap(err, "getting the sender email")
	}

	data := mailer.ConfirmationCodeTmplData{
		Username: user.Username,
		Code:     code,
		BaseURL:  a.Config.WebURL,
	}

	if err := a.EmailBackend.SendEmail(mailer.EmailTypeConfirmationCode, from, []string{user.Email}, data); err != nil {
		return errors.Wrapf(err, "sending confirmation code email for %s", user.Username)
	}

	return nil
}

// SendWelcomeEmail sends a welcome email
func (a *App) SendWelcomeEmail(user database.User) error {
	from, err := a.getNoreplySender()
	if err != nil {
		return errors.Wrap(err, "getting the sender email")
	}

	data := mailer.WelcomeTmplData{
		Username: user.Username,
		BaseURL:  a.Config.WebURL,
	}

	if err := a.EmailBackend.SendEmail(mailer.EmailTypeWelcome, from, []string{user.Email}, data); err != nil {
		return errors.Wrapf(err, "sending welcome email for %s", user.Username)
	}

	return nil
}
