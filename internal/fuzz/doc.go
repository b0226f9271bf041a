// Package fuzztests houses Go fuzz harnesses for the source registry and the
// snippet renderer. They feed arbitrary bytes and offsets through FileSet and
// diagfmt and check that nothing panics and the documented invariants hold.
//
// Назначение: гонять произвольные тексты и спаны через FileSet и рендерер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/diag, internal/diagfmt, internal/testkit.

package fuzztests
