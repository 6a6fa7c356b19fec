package importer

import (
	"fmt"
	"io"
)

type Service struct {
	parser *Parser
}

func NewService() *Service {
	return &Service{parser: NewParser()}
}

// Import parses r as the given kind of file and appends the result to b.
func (s *Service) Import(file File, r io.Reader, b *Batch) error {
	switch file {
	case FileRecords:
		records, err := s.parser.ParseRecords(r)
		if err != nil {
			return err
		}

		b.Records = append(b.Records, records...)
	case FileInvoices:
		invoices, err := s.parser.ParseInvoices(r)
		if err != nil {
			return err
		}

		b.Invoices = append(b.Invoices, invoices...)
	default:
		return fmt.Errorf("unknown import file kind: %s", file)
	}

	return nil
}
