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

package mailer

// ConfirmationCodeTmplData is a template data for confirmation code emails
type ConfirmationCodeTmplData struct {
	Username string
	Code     string
	BaseURL  string
}

// WelcomeTmplData is a template data for welcome emails
type WelcomeTmplData struct {
	Username string
	BaseURL  string
}
