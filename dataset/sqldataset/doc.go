/*
Package sqldataset reads and writes dataset.Sets from and to tables of
SQL databases.

Every column of the set is a column of the table. Columns of nominal
values are stored as TEXT and continuous ones as REAL, with NULL standing
for missing values. The label column, when present, is stored as TEXT.

The SQL dialect specifics are provided by an Adapter, with
implementations for SQLite3 and PostgreSQL in the subpackages.
*/
package sqldataset
