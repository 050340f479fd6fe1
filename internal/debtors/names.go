package debtors

import (
	"strings"

	"github.com/agentstation/bankrot/pkg/payload"
)

// normalizeSpaces trims s and collapses inner whitespace runs.
func normalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// surname returns the first word of a "Фамилия Имя Отчество" name.
func surname(fio string) string {
	if f := strings.Fields(fio); len(f) > 0 {
		return f[0]
	}
	return ""
}

func nameParts(last, first, middle string) string {
	return normalizeSpaces(last + " " + first + " " + middle)
}

// personFullName assembles the full name from a person card: direct fields,
// then name parts at the top level, then a ready string found deeper, then
// name parts found deeper. A bare nested "name" is tried last since regions
// and statuses carry one too.
func personFullName(p payload.Node) string {
	if s := p.FirstText("fullName", "fio", "name"); s != "" {
		return normalizeSpaces(s)
	}
	if s := nameParts(
		p.FirstText("lastName", "surname"),
		p.FirstText("firstName", "givenName"),
		p.FirstText("middleName", "patronymic"),
	); s != "" {
		return s
	}
	if s := p.FindDeep("fullName", "fio", "personName", "debtorName"); s != "" {
		return normalizeSpaces(s)
	}
	if s := nameParts(
		p.FindDeep("lastName", "surname"),
		p.FindDeep("firstName", "givenName"),
		p.FindDeep("middleName", "patronymic"),
	); s != "" {
		return s
	}
	return normalizeSpaces(p.FindDeep("name"))
}

// previousSurname reads the surname a person had before. The nameHistories
// list is consulted first; its entries are either full-name strings or
// objects. Deep search over dedicated keys follows.
func previousSurname(p payload.Node) string {
	for _, h := range p.Get("nameHistories").Elems() {
		if h.Kind() == payload.KindString {
			if s := surname(h.Text()); s != "" {
				return s
			}
			continue
		}
		if s := h.FirstText("lastName", "surname"); s != "" {
			return normalizeSpaces(s)
		}
		if s := surname(h.FirstText("fullName", "fio", "name", "value")); s != "" {
			return s
		}
	}

	if s := p.FindDeep("previousLastName", "oldLastName", "surnamePrevious", "lastNamePrevious"); s != "" {
		return normalizeSpaces(s)
	}
	if s := p.FindDeep("previousSurname", "oldSurname"); s != "" {
		return normalizeSpaces(s)
	}
	return surname(p.FindDeep("previousFullName", "previousName", "oldName", "fioPrevious", "fullNamePrevious"))
}

// unlessSame drops prev when it equals current, ignoring case.
func unlessSame(prev, current string) string {
	if prev != "" && current != "" && strings.EqualFold(prev, current) {
		return ""
	}
	return prev
}
