package domain

type Page struct {
	Number int
	Size   int
}

func NewPage(pageNumber, pageSize int) Page {
	pNumber := 1
	if pageNumber > 0 {
		pNumber = pageNumber
	}

	pSize := 10
	if pageSize > 0 {
		pSize = pageSize
	}

	return Page{
		Number: pNumber,
		Size:   pSize,
	}
}

// Bounds returns the start and end indexes of the page within a list of the
// given length.
func (p Page) Bounds(length int) (int, int) {
	start := (p.Number - 1) * p.Size
	if start > length {
		start = length
	}
	end := start + p.Size
	if end > length {
		end = length
	}
	return start, end
}
