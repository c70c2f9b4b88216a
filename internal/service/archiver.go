package service

// Archiver receives records removed by delete workflows. Implementations must not block.
type Archiver interface {
	Archive(kind, id string, record any)
}

type nopArchiver struct{}

func (nopArchiver) Archive(string, string, any) {}

func archiverOrNop(a Archiver) Archiver {
	if a == nil {
		return nopArchiver{}
	}
	return a
}
