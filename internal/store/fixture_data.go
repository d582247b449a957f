package store

import (
	"time"

	"github.com/lenderdesk/guarantor/internal/guarantor"
)

// SeedRecords returns the deterministic snapshot the fixture backend serves.
// IDs and timestamps are stable so list ordering and pagination are
// reproducible across runs.
func SeedRecords() []guarantor.Record {
	return []guarantor.Record{
		{
			ID:           "1",
			Name:         "Michael R. Davis",
			Relationship: "Personal guarantor for BlueRock Holdings LLC",
			Address: guarantor.Address{
				Street: "123 Main Street",
				City:   "Phoenix",
				State:  "AZ",
				Zip:    "85001",
			},
			DateOfBirth:         "1978-03-22",
			Occupation:          "Real Estate Investor",
			Employer:            "Davis Capital Group",
			LinkedIn:            "https://www.linkedin.com/in/michaeldavis",
			RegistrationNumber:  "AZ-12345678",
			Associations:        []string{"Phoenix Real Estate Association"},
			Comments:            "Primary contact for borrower's credit line renewal.",
			SubmissionTimestamp: time.Date(2025, time.October, 21, 10, 30, 0, 0, time.UTC),
			SubmittedBy:         "LoanOfficer123",
			Status:              guarantor.StatusPendingVerification,
			Attachments: []guarantor.Attachment{
				{
					ID:         "att1",
					Filename:   "drivers_license.pdf",
					FileType:   "application/pdf",
					FileSize:   2048576,
					UploadDate: time.Date(2025, time.October, 21, 10, 25, 0, 0, time.UTC),
					Type:       guarantor.AttachmentIdentification,
					FileURL:    "/api/files/att1",
				},
			},
		},
		{
			ID:           "2",
			Name:         "Sarah J. Thompson",
			Relationship: "Business partner and co-owner",
			Address: guarantor.Address{
				Street: "456 Oak Avenue",
				City:   "Austin",
				State:  "TX",
				Zip:    "73301",
			},
			DateOfBirth:         "1985-07-15",
			Occupation:          "Software Engineer",
			Employer:            "Tech Solutions LLC",
			LinkedIn:            "https://www.linkedin.com/in/sarahthompson",
			RegistrationNumber:  "TX-87654321",
			Associations:        []string{"Austin Tech Association", "Women in Tech Network"},
			Comments:            "High-income guarantor with excellent credit history.",
			SubmissionTimestamp: time.Date(2025, time.October, 20, 14, 15, 0, 0, time.UTC),
			SubmittedBy:         "LoanOfficer456",
			Status:              guarantor.StatusVerified,
			Attachments:         []guarantor.Attachment{},
		},
		{
			ID:           "3",
			Name:         "Robert Chen",
			Relationship: "Uncle and business advisor",
			Address: guarantor.Address{
				Street: "789 Pine Street",
				City:   "Seattle",
				State:  "WA",
				Zip:    "98101",
			},
			DateOfBirth:         "1972-12-08",
			Occupation:          "Financial Consultant",
			Employer:            "Chen Financial Services",
			LinkedIn:            "https://www.linkedin.com/in/robertchen",
			RegistrationNumber:  "WA-11223344",
			Associations:        []string{"Seattle Financial Advisors Association"},
			Comments:            "Long-standing family relationship with borrower.",
			SubmissionTimestamp: time.Date(2025, time.October, 19, 9, 45, 0, 0, time.UTC),
			SubmittedBy:         "LoanOfficer789",
			Status:              guarantor.StatusInReview,
		},
		{
			ID:           "4",
			Name:         "Lisa Martinez",
			Relationship: "Business mentor and investor",
			Address: guarantor.Address{
				Street: "321 Elm Drive",
				City:   "Denver",
				State:  "CO",
				Zip:    "80201",
			},
			DateOfBirth:         "1980-04-12",
			Occupation:          "Investment Manager",
			Employer:            "Mountain Capital Partners",
			LinkedIn:            "https://www.linkedin.com/in/lisamartinez",
			RegistrationNumber:  "CO-99887766",
			Associations:        []string{"Denver Investment Club", "Colorado Business Network"},
			Comments:            "Extensive investment portfolio and business experience.",
			SubmissionTimestamp: time.Date(2025, time.October, 18, 16, 20, 0, 0, time.UTC),
			SubmittedBy:         "LoanOfficer101",
			Status:              guarantor.StatusPendingVerification,
		},
		{
			ID:           "5",
			Name:         "James Wilson",
			Relationship: "Former business partner",
			Address: guarantor.Address{
				Street: "654 Maple Lane",
				City:   "Miami",
				State:  "FL",
				Zip:    "33101",
			},
			DateOfBirth:         "1975-09-30",
			Occupation:          "Real Estate Developer",
			Employer:            "Wilson Development Corp",
			LinkedIn:            "https://www.linkedin.com/in/jameswilson",
			RegistrationNumber:  "FL-55443322",
			Associations:        []string{"Miami Real Estate Board"},
			Comments:            "Strong real estate portfolio in South Florida.",
			SubmissionTimestamp: time.Date(2025, time.October, 17, 11, 10, 0, 0, time.UTC),
			SubmittedBy:         "LoanOfficer202",
			Status:              guarantor.StatusRejected,
		},
	}
}
