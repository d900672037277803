// Package fuzztests houses Go fuzz harnesses for the merge-tag pipeline
// (source -> mergetag -> diag -> diagfmt). They guard against panics and
// broken span bookkeeping on arbitrary template text.
//
// Назначение: прогонять произвольные байты через FileSet, сканеры и
// форматтеры диагностик.
//
// Не делает: генерацию корпусов, запуск внешнего HTML-линтера, выполнение CLI.
package fuzztests
