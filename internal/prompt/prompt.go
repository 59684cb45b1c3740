// Package prompt builds the completion prompt for one generation
// request. Composition is pure: identical inputs yield byte-identical
// output.
package prompt

import (
	"strings"

	"github.com/jonathan/job-tailor/internal/types"
)

// SystemText is the fixed system instruction sent with every request.
const SystemText = "You are a professional career advisor who creates tailored resumes and cover letters. Always respond with valid JSON."

const taskInstruction = "You are a professional career advisor. Based on the following job posting and candidate information, generate:\n" +
	"1. A tailored resume that highlights the most relevant experience and skills for this specific role\n" +
	"2. A compelling cover letter that demonstrates why the candidate is a great fit\n\n"

const closingInstruction = "\n\nPlease respond with a JSON object containing two fields:\n" +
	"- \"tailoredResume\": The complete tailored resume in markdown format\n" +
	"- \"coverLetter\": The complete cover letter in markdown format\n\n" +
	"Make the content professional, concise, and specifically tailored to match the job requirements."

const noDescription = "(No description provided)"

// Compose assembles the user prompt from the resolved job description,
// the resume payload and optional additional information. File resumes
// contribute only their name; the bytes are never read.
func Compose(jobURL, jobDescription string, resume types.ResumePayload, additionalInfo string) (systemText, userText string) {
	var sb strings.Builder
	sb.WriteString(taskInstruction)

	description := jobDescription
	if description == "" {
		description = noDescription
	}
	if jobURL != "" {
		sb.WriteString("Job URL: ")
		sb.WriteString(jobURL)
		sb.WriteString("\n")
		sb.WriteString(description)
	} else {
		sb.WriteString("Job Description:\n")
		sb.WriteString(description)
	}

	sb.WriteString("\n\n")
	if resume.Type == types.ResumeTypeText {
		sb.WriteString("Resume:\n")
		sb.WriteString(resume.Content)
	} else {
		sb.WriteString("Resume uploaded as file: ")
		sb.WriteString(resume.FileName)
	}

	if additionalInfo != "" {
		sb.WriteString("\n\nAdditional Work Experience & Skills:\n")
		sb.WriteString(additionalInfo)
	}

	sb.WriteString(closingInstruction)
	return SystemText, sb.String()
}
